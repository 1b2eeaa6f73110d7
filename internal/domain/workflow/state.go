package workflow

// State represents a workflow state in the idea approval lifecycle
type State string

const (
	StatePendente  State = "PENDENTE"
	StateAprovada  State = "APROVADA"
	StateRejeitada State = "REJEITADA"
)

var validStates = map[State]bool{
	StatePendente:  true,
	StateAprovada:  true,
	StateRejeitada: true,
}

var terminalStates = map[State]bool{
	StateAprovada:  true,
	StateRejeitada: true,
}

// IsTerminal returns true if the state is a terminal state (no further transitions allowed)
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid workflow state
func (s State) IsValid() bool {
	return validStates[s]
}
