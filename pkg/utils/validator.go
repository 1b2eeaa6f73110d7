package utils

import (
	"fmt"
	"regexp"
)

var (
	dateRegex    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	horarioRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	controlRegex = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// ValidateDate validates a YYYY-MM-DD date string
func ValidateDate(date string) error {
	if !dateRegex.MatchString(date) {
		return fmt.Errorf("invalid date format, expected YYYY-MM-DD: %s", date)
	}
	return nil
}

// ValidateHorario validates an HH:MM time of day
func ValidateHorario(horario string) error {
	if !horarioRegex.MatchString(horario) {
		return fmt.Errorf("invalid time format, expected HH:MM: %s", horario)
	}
	return nil
}

// SanitizeText strips control characters from pasted input. Newlines and
// tabs survive, the parser depends on them.
func SanitizeText(s string) string {
	return controlRegex.ReplaceAllString(s, "")
}
