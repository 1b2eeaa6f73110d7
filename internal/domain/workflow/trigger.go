package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	TriggerAprovar  Trigger = "APROVAR"
	TriggerRejeitar Trigger = "REJEITAR"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
