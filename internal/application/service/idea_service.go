package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/domain/workflow"
)

// IdeaService governs the idea approval lifecycle: pendente until an approver
// accepts it (spawning a work order) or rejects it with a reason.
type IdeaService interface {
	Approve(ctx context.Context, ideaID string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error)
	Reject(ctx context.Context, ideaID string, actor entity.Actor, motivo string) (*entity.Idea, error)
	Edit(ctx context.Context, ideaID string, patch entity.IdeaPatch, actor entity.Actor) (*entity.Idea, error)
	Get(ctx context.Context, ideaID string) (*entity.Idea, error)
	List(ctx context.Context, actor entity.Actor, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error)
}

type ideaServiceImpl struct {
	ideaRepo  port.IdeaRepository
	osRepo    port.WorkOrderRepository
	eventRepo port.EventLogRepository
	txManager port.TransactionManager
	sla       SLAConfig
	logger    Logger
}

// NewIdeaService creates a new IdeaService
func NewIdeaService(
	ideaRepo port.IdeaRepository,
	osRepo port.WorkOrderRepository,
	eventRepo port.EventLogRepository,
	txManager port.TransactionManager,
	sla SLAConfig,
	logger Logger,
) IdeaService {
	return &ideaServiceImpl{
		ideaRepo:  ideaRepo,
		osRepo:    osRepo,
		eventRepo: eventRepo,
		txManager: txManager,
		sla:       sla,
		logger:    logger,
	}
}

// Approve moves a pending idea to aprovada and seeds a work order in roteiro
// from its fields. Both mutations and the two audit entries happen in one
// transaction.
func (s *ideaServiceImpl) Approve(ctx context.Context, ideaID string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error) {
	if !actor.PodeAprovar {
		return nil, nil, fmt.Errorf("%w: usuário %s não pode aprovar ideias", entity.ErrPermissionDenied, actor.ID)
	}

	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, nil, fmt.Errorf("get idea: %w", err)
	}
	if idea == nil {
		return nil, nil, fmt.Errorf("%w: ideia %s", entity.ErrNotFound, ideaID)
	}

	machine, err := workflow.NewIdeaMachine(idea.Status)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: status %s", entity.ErrInvalidState, idea.Status)
	}
	if err := machine.Fire(ctx, workflow.TriggerAprovar); err != nil {
		return nil, nil, fmt.Errorf("%w: ideia %s está %s", entity.ErrInvalidState, ideaID, idea.Status)
	}

	os := s.workOrderFromIdea(idea, actor)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.osRepo.Create(txCtx, os); err != nil {
			return fmt.Errorf("create work order: %w", err)
		}

		idea.Status = entity.IdeaAprovada
		idea.AprovadaPor = actor.ID
		idea.OSCriadaID = os.ID
		idea.UpdatedAt = time.Now()
		if err := s.ideaRepo.Update(txCtx, idea); err != nil {
			return fmt.Errorf("update idea: %w", err)
		}

		approveEvent := &entity.EventLog{
			ID:      uuid.NewString(),
			IdeiaID: idea.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoApprove,
			Detalhe: fmt.Sprintf("Ideia aprovada, OS %s criada", os.ID),
		}
		if err := s.eventRepo.Append(txCtx, approveEvent); err != nil {
			return fmt.Errorf("append approve event: %w", err)
		}

		createEvent := &entity.EventLog{
			ID:      uuid.NewString(),
			OSID:    os.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoCreate,
			Detalhe: fmt.Sprintf("OS criada a partir da ideia %s", idea.ID),
		}
		if err := s.eventRepo.Append(txCtx, createEvent); err != nil {
			return fmt.Errorf("append create event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to approve idea", "error", err, "ideia_id", ideaID)
		return nil, nil, err
	}

	s.logger.Info("Idea approved", "ideia_id", idea.ID, "os_id", os.ID, "actor", actor.ID)
	return idea, os, nil
}

// Reject moves a pending idea to rejeitada. A non-empty reason is required.
func (s *ideaServiceImpl) Reject(ctx context.Context, ideaID string, actor entity.Actor, motivo string) (*entity.Idea, error) {
	if strings.TrimSpace(motivo) == "" {
		return nil, fmt.Errorf("%w: motivo de rejeição é obrigatório", entity.ErrValidation)
	}
	if !actor.PodeAprovar {
		return nil, fmt.Errorf("%w: usuário %s não pode rejeitar ideias", entity.ErrPermissionDenied, actor.ID)
	}

	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("%w: ideia %s", entity.ErrNotFound, ideaID)
	}

	machine, err := workflow.NewIdeaMachine(idea.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: status %s", entity.ErrInvalidState, idea.Status)
	}
	if err := machine.Fire(ctx, workflow.TriggerRejeitar); err != nil {
		return nil, fmt.Errorf("%w: ideia %s está %s", entity.ErrInvalidState, ideaID, idea.Status)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		idea.Status = entity.IdeaRejeitada
		idea.RejeitadaPor = actor.ID
		idea.MotivoRejeicao = motivo
		idea.UpdatedAt = time.Now()
		if err := s.ideaRepo.Update(txCtx, idea); err != nil {
			return fmt.Errorf("update idea: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			IdeiaID: idea.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoReject,
			Detalhe: fmt.Sprintf("Ideia rejeitada: %s", motivo),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append reject event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to reject idea", "error", err, "ideia_id", ideaID)
		return nil, err
	}

	s.logger.Info("Idea rejected", "ideia_id", idea.ID, "actor", actor.ID)
	return idea, nil
}

// Edit applies a field patch to a pending idea. The pendente-only guard is
// enforced here, not just in the UI.
func (s *ideaServiceImpl) Edit(ctx context.Context, ideaID string, patch entity.IdeaPatch, actor entity.Actor) (*entity.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("%w: ideia %s", entity.ErrNotFound, ideaID)
	}

	if idea.Status != entity.IdeaPendente {
		return nil, fmt.Errorf("%w: ideia %s está %s e não pode ser editada", entity.ErrInvalidState, ideaID, idea.Status)
	}

	changed := applyIdeaPatch(idea, patch)
	if len(changed) == 0 {
		return idea, nil
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		idea.UpdatedAt = time.Now()
		if err := s.ideaRepo.Update(txCtx, idea); err != nil {
			return fmt.Errorf("update idea: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			IdeiaID: idea.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoStatusChange,
			Detalhe: fmt.Sprintf("Ideia editada: %s", strings.Join(changed, ", ")),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append edit event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to edit idea", "error", err, "ideia_id", ideaID)
		return nil, err
	}

	return idea, nil
}

// Get retrieves an idea by ID.
func (s *ideaServiceImpl) Get(ctx context.Context, ideaID string) (*entity.Idea, error) {
	idea, err := s.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return nil, fmt.Errorf("get idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("%w: ideia %s", entity.ErrNotFound, ideaID)
	}
	return idea, nil
}

// List retrieves ideas for the actor's organization, optionally filtered by
// status.
func (s *ideaServiceImpl) List(ctx context.Context, actor entity.Actor, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error) {
	ideas, err := s.ideaRepo.ListByOrg(ctx, actor.OrgID, status, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list ideas", "error", err, "org_id", actor.OrgID)
		return nil, err
	}
	return ideas, nil
}

// workOrderFromIdea seeds a new work order in roteiro from an approved idea.
func (s *ideaServiceImpl) workOrderFromIdea(idea *entity.Idea, actor entity.Actor) *entity.WorkOrder {
	now := time.Now()
	deadline := s.sla.DeadlineFor(entity.OSRoteiro, now)
	return &entity.WorkOrder{
		ID:         uuid.NewString(),
		Titulo:     idea.Titulo,
		Descricao:  idea.Descricao,
		Marca:      idea.Marca,
		Objetivo:   idea.Objetivo,
		Tipo:       idea.Tipo,
		Status:     entity.OSRoteiro,
		Prioridade: idea.Prioridade,
		Canais:     idea.Canais,
		Gancho:     idea.Gancho,
		CTA:        idea.CTA,
		Roteiro:    idea.Roteiro,
		Legenda:    idea.Legenda,
		Prazo:      idea.Prazo,
		LinksMidia: idea.LinksMidia,
		PrazoSLA:   deadline,
		OrgID:      idea.OrgID,
		CriadaPor:  actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func applyIdeaPatch(idea *entity.Idea, patch entity.IdeaPatch) []string {
	var changed []string
	if patch.Titulo != nil && *patch.Titulo != idea.Titulo {
		idea.Titulo = *patch.Titulo
		changed = append(changed, "titulo")
	}
	if patch.Descricao != nil && *patch.Descricao != idea.Descricao {
		idea.Descricao = *patch.Descricao
		changed = append(changed, "descricao")
	}
	if patch.Marca != nil && *patch.Marca != idea.Marca {
		idea.Marca = *patch.Marca
		changed = append(changed, "marca")
	}
	if patch.Objetivo != nil && *patch.Objetivo != idea.Objetivo {
		idea.Objetivo = *patch.Objetivo
		changed = append(changed, "objetivo")
	}
	if patch.Tipo != nil && *patch.Tipo != idea.Tipo {
		idea.Tipo = *patch.Tipo
		changed = append(changed, "tipo")
	}
	if patch.Prioridade != nil && *patch.Prioridade != idea.Prioridade {
		idea.Prioridade = *patch.Prioridade
		changed = append(changed, "prioridade")
	}
	if patch.Gancho != nil && *patch.Gancho != idea.Gancho {
		idea.Gancho = *patch.Gancho
		changed = append(changed, "gancho")
	}
	if patch.CTA != nil && *patch.CTA != idea.CTA {
		idea.CTA = *patch.CTA
		changed = append(changed, "cta")
	}
	if patch.Roteiro != nil && *patch.Roteiro != idea.Roteiro {
		idea.Roteiro = *patch.Roteiro
		changed = append(changed, "roteiro")
	}
	if patch.Legenda != nil && *patch.Legenda != idea.Legenda {
		idea.Legenda = *patch.Legenda
		changed = append(changed, "legenda")
	}
	if patch.Prazo != nil && *patch.Prazo != idea.Prazo {
		idea.Prazo = *patch.Prazo
		changed = append(changed, "prazo")
	}
	return changed
}
