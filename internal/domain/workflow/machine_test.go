package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StatePendente, false},
		{StateAprovada, true},
		{StateRejeitada, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"pendente", StatePendente, true},
		{"aprovada", StateAprovada, true},
		{"invalid state", State("INVALID"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIdeaMachine_PendingCanApproveOrReject(t *testing.T) {
	machine, err := NewIdeaMachine(entity.IdeaPendente)
	if err != nil {
		t.Fatalf("NewIdeaMachine() error = %v", err)
	}

	if !machine.CanFire(TriggerAprovar) {
		t.Error("expected TriggerAprovar to be permitted from PENDENTE")
	}
	if !machine.CanFire(TriggerRejeitar) {
		t.Error("expected TriggerRejeitar to be permitted from PENDENTE")
	}

	if err := machine.Fire(context.Background(), TriggerAprovar); err != nil {
		t.Fatalf("Fire(TriggerAprovar) error = %v", err)
	}
	if machine.State() != StateAprovada {
		t.Errorf("State() = %v, want %v", machine.State(), StateAprovada)
	}
}

func TestIdeaMachine_TerminalStatesRefuseTriggers(t *testing.T) {
	tests := []struct {
		name   string
		status entity.IdeaStatus
	}{
		{"aprovada", entity.IdeaAprovada},
		{"rejeitada", entity.IdeaRejeitada},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine, err := NewIdeaMachine(tt.status)
			if err != nil {
				t.Fatalf("NewIdeaMachine() error = %v", err)
			}

			err = machine.Fire(context.Background(), TriggerAprovar)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
			}

			if got := machine.PermittedTriggers(); len(got) != 0 {
				t.Errorf("PermittedTriggers() = %v, want empty", got)
			}
		})
	}
}

func TestNewIdeaMachine_UnknownStatus(t *testing.T) {
	_, err := NewIdeaMachine(entity.IdeaStatus("qualquer"))
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("NewIdeaMachine() error = %v, want ErrInvalidState", err)
	}
}
