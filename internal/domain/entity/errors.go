package entity

import "errors"

var (
	// ErrValidation is returned when a request is missing a required field
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied is returned when the actor lacks the approver role
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when an idea or work order id does not resolve
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when an action is attempted on an idea that
	// already left the pending state
	ErrInvalidState = errors.New("invalid state")
)
