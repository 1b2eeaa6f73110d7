package workflow

import (
	"fmt"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// NewIdeaMachine builds the idea approval machine positioned at the given
// status. Pendente is the only state with outgoing transitions; approval and
// rejection are terminal.
func NewIdeaMachine(status entity.IdeaStatus) (StateMachine, error) {
	state, err := stateFor(status)
	if err != nil {
		return nil, err
	}

	builder := NewBuilder()
	builder.Configure(StatePendente).
		Permit(TriggerAprovar, StateAprovada).
		Permit(TriggerRejeitar, StateRejeitada)

	return builder.Build(state), nil
}

func stateFor(status entity.IdeaStatus) (State, error) {
	switch status {
	case entity.IdeaPendente:
		return StatePendente, nil
	case entity.IdeaAprovada:
		return StateAprovada, nil
	case entity.IdeaRejeitada:
		return StateRejeitada, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidState, status)
}
