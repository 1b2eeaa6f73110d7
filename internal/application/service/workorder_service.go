package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/pkg/utils"
)

// SLAConfig maps each production stage to the time budget its work is
// expected to take. Stages without an entry carry no SLA deadline.
type SLAConfig struct {
	PerStatus map[entity.OSStatus]time.Duration
}

// DeadlineFor computes the SLA deadline for a stage entered at the given
// time. Returns nil when the stage has no time budget.
func (c SLAConfig) DeadlineFor(status entity.OSStatus, from time.Time) *time.Time {
	budget, ok := c.PerStatus[status]
	if !ok || budget <= 0 {
		return nil
	}
	deadline := from.Add(budget)
	return &deadline
}

// DefaultSLAConfig returns the stock stage time budgets.
func DefaultSLAConfig() SLAConfig {
	return SLAConfig{
		PerStatus: map[entity.OSStatus]time.Duration{
			entity.OSRoteiro:     48 * time.Hour,
			entity.OSAudio:       24 * time.Hour,
			entity.OSCaptacao:    72 * time.Hour,
			entity.OSEdicao:      48 * time.Hour,
			entity.OSRevisao:     24 * time.Hour,
			entity.OSAprovacao:   24 * time.Hour,
			entity.OSAgendamento: 24 * time.Hour,
		},
	}
}

// defaultPublishHour is used when an approval supplies a date without a time.
const defaultPublishHour = "10:00"

// CreateWorkOrderInput is the payload of the direct creation form.
type CreateWorkOrderInput struct {
	Titulo           string             `json:"titulo"`
	Descricao        string             `json:"descricao"`
	Marca            string             `json:"marca"`
	Objetivo         entity.Objective   `json:"objetivo"`
	Tipo             entity.ContentType `json:"tipo"`
	Prioridade       entity.Priority    `json:"prioridade"`
	Canais           []string           `json:"canais"`
	Gancho           string             `json:"gancho"`
	CTA              string             `json:"cta"`
	Roteiro          string             `json:"roteiro"`
	Legenda          string             `json:"legenda"`
	Prazo            string             `json:"prazo"`
	LinksMidia       []string           `json:"links_midia"`
	ResponsavelAtual string             `json:"responsavel_atual"`
	Responsaveis     map[string]string  `json:"responsaveis"`
	Rascunho         bool               `json:"rascunho"`
}

// ApproveWorkOrderInput carries the scheduling data of an approval.
type ApproveWorkOrderInput struct {
	DataPublicacao string `json:"data_publicacao"`
	Horario        string `json:"horario"`
}

// WorkOrderService governs work order creation, free-form status updates,
// the approve/reject side effects and the visibility filter.
type WorkOrderService interface {
	Create(ctx context.Context, input CreateWorkOrderInput, actor entity.Actor) (*entity.WorkOrder, error)
	Update(ctx context.Context, osID string, patch entity.WorkOrderPatch, actor entity.Actor) (*entity.WorkOrder, error)
	Approve(ctx context.Context, osID string, actor entity.Actor, input ApproveWorkOrderInput) (*entity.WorkOrder, error)
	Reject(ctx context.Context, osID string, actor entity.Actor, motivo string) (*entity.WorkOrder, error)
	Get(ctx context.Context, osID string, actor entity.Actor) (*entity.WorkOrder, error)
	ListVisible(ctx context.Context, actor entity.Actor) ([]*entity.WorkOrder, error)
}

type workOrderServiceImpl struct {
	osRepo    port.WorkOrderRepository
	eventRepo port.EventLogRepository
	txManager port.TransactionManager
	sla       SLAConfig
	logger    Logger
}

// NewWorkOrderService creates a new WorkOrderService
func NewWorkOrderService(
	osRepo port.WorkOrderRepository,
	eventRepo port.EventLogRepository,
	txManager port.TransactionManager,
	sla SLAConfig,
	logger Logger,
) WorkOrderService {
	return &workOrderServiceImpl{
		osRepo:    osRepo,
		eventRepo: eventRepo,
		txManager: txManager,
		sla:       sla,
		logger:    logger,
	}
}

// Create inserts a new work order in roteiro, or rascunho when requested.
func (s *workOrderServiceImpl) Create(ctx context.Context, input CreateWorkOrderInput, actor entity.Actor) (*entity.WorkOrder, error) {
	if strings.TrimSpace(input.Titulo) == "" {
		return nil, fmt.Errorf("%w: título é obrigatório", entity.ErrValidation)
	}

	status := entity.OSRoteiro
	if input.Rascunho {
		status = entity.OSRascunho
	}

	now := time.Now()
	os := &entity.WorkOrder{
		ID:               uuid.NewString(),
		Titulo:           input.Titulo,
		Descricao:        input.Descricao,
		Marca:            input.Marca,
		Objetivo:         input.Objetivo,
		Tipo:             input.Tipo,
		Status:           status,
		Prioridade:       input.Prioridade,
		Canais:           input.Canais,
		Gancho:           input.Gancho,
		CTA:              input.CTA,
		Roteiro:          input.Roteiro,
		Legenda:          input.Legenda,
		Prazo:            input.Prazo,
		LinksMidia:       input.LinksMidia,
		PrazoSLA:         s.sla.DeadlineFor(status, now),
		ResponsavelAtual: input.ResponsavelAtual,
		Responsaveis:     input.Responsaveis,
		OrgID:            actor.OrgID,
		CriadaPor:        actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.osRepo.Create(txCtx, os); err != nil {
			return fmt.Errorf("create work order: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			OSID:    os.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoCreate,
			Detalhe: fmt.Sprintf("OS criada com status %s", os.Status),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append create event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create work order", "error", err, "titulo", input.Titulo)
		return nil, err
	}

	s.logger.Info("Work order created", "os_id", os.ID, "status", os.Status, "actor", actor.ID)
	return os, nil
}

// Update applies a free-form patch. Any valid status may be written; status
// changes recompute the SLA deadline and everything lands in the audit trail.
func (s *workOrderServiceImpl) Update(ctx context.Context, osID string, patch entity.WorkOrderPatch, actor entity.Actor) (*entity.WorkOrder, error) {
	os, err := s.getVisible(ctx, osID, actor)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && !patch.Status.IsValid() {
		return nil, fmt.Errorf("%w: status desconhecido %s", entity.ErrValidation, *patch.Status)
	}

	changed := applyWorkOrderPatch(os, patch)
	if len(changed) == 0 {
		return os, nil
	}

	if slices.Contains(changed, "status") {
		os.PrazoSLA = s.sla.DeadlineFor(os.Status, time.Now())
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		os.UpdatedAt = time.Now()
		if err := s.osRepo.Update(txCtx, os); err != nil {
			return fmt.Errorf("update work order: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			OSID:    os.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoStatusChange,
			Detalhe: fmt.Sprintf("Campos alterados: %s", strings.Join(changed, ", ")),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append update event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update work order", "error", err, "os_id", osID)
		return nil, err
	}

	return os, nil
}

// Approve schedules the work order: status agendamento, internal approval
// flag set, publish timestamp computed from the supplied date and time.
func (s *workOrderServiceImpl) Approve(ctx context.Context, osID string, actor entity.Actor, input ApproveWorkOrderInput) (*entity.WorkOrder, error) {
	if !actor.PodeAprovar {
		return nil, fmt.Errorf("%w: usuário %s não pode aprovar OS", entity.ErrPermissionDenied, actor.ID)
	}
	if strings.TrimSpace(input.DataPublicacao) == "" {
		return nil, fmt.Errorf("%w: data de publicação é obrigatória", entity.ErrValidation)
	}

	publishAt, err := parsePublishTimestamp(input.DataPublicacao, input.Horario)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	os, err := s.osRepo.GetByID(ctx, osID)
	if err != nil {
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if os == nil {
		return nil, fmt.Errorf("%w: OS %s", entity.ErrNotFound, osID)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		os.Status = entity.OSAgendamento
		os.AprovadoCrispim = true
		os.DataPublicacao = &publishAt
		os.PrazoSLA = s.sla.DeadlineFor(entity.OSAgendamento, now)
		os.UpdatedAt = now
		if err := s.osRepo.Update(txCtx, os); err != nil {
			return fmt.Errorf("update work order: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			OSID:    os.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoApprove,
			Detalhe: fmt.Sprintf("OS aprovada, publicação agendada para %s", publishAt.Format("2006-01-02 15:04")),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append approve event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to approve work order", "error", err, "os_id", osID)
		return nil, err
	}

	s.logger.Info("Work order approved", "os_id", os.ID, "publish_at", publishAt, "actor", actor.ID)
	return os, nil
}

// Reject sends the work order back to revisão with the internal approval
// flag cleared. A non-empty reason is required.
func (s *workOrderServiceImpl) Reject(ctx context.Context, osID string, actor entity.Actor, motivo string) (*entity.WorkOrder, error) {
	if strings.TrimSpace(motivo) == "" {
		return nil, fmt.Errorf("%w: motivo de reprovação é obrigatório", entity.ErrValidation)
	}

	os, err := s.osRepo.GetByID(ctx, osID)
	if err != nil {
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if os == nil {
		return nil, fmt.Errorf("%w: OS %s", entity.ErrNotFound, osID)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		now := time.Now()
		os.Status = entity.OSRevisao
		os.AprovadoCrispim = false
		os.PrazoSLA = s.sla.DeadlineFor(entity.OSRevisao, now)
		os.UpdatedAt = now
		if err := s.osRepo.Update(txCtx, os); err != nil {
			return fmt.Errorf("update work order: %w", err)
		}

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			OSID:    os.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoReject,
			Detalhe: fmt.Sprintf("OS reprovada: %s", motivo),
		}
		if err := s.eventRepo.Append(txCtx, event); err != nil {
			return fmt.Errorf("append reject event: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Failed to reject work order", "error", err, "os_id", osID)
		return nil, err
	}

	s.logger.Info("Work order rejected", "os_id", os.ID, "actor", actor.ID)
	return os, nil
}

// Get retrieves a work order, applying the visibility rule.
func (s *workOrderServiceImpl) Get(ctx context.Context, osID string, actor entity.Actor) (*entity.WorkOrder, error) {
	return s.getVisible(ctx, osID, actor)
}

// ListVisible returns the actor's slice of the board: org-wide viewers see
// everything, everyone else sees what they created or are responsible for.
func (s *workOrderServiceImpl) ListVisible(ctx context.Context, actor entity.Actor) ([]*entity.WorkOrder, error) {
	all, err := s.osRepo.ListByOrg(ctx, actor.OrgID)
	if err != nil {
		s.logger.Error("Failed to list work orders", "error", err, "org_id", actor.OrgID)
		return nil, err
	}

	visible := make([]*entity.WorkOrder, 0, len(all))
	for _, os := range all {
		if os.VisibleTo(actor) {
			visible = append(visible, os)
		}
	}
	return visible, nil
}

func (s *workOrderServiceImpl) getVisible(ctx context.Context, osID string, actor entity.Actor) (*entity.WorkOrder, error) {
	os, err := s.osRepo.GetByID(ctx, osID)
	if err != nil {
		return nil, fmt.Errorf("get work order: %w", err)
	}
	if os == nil || !os.VisibleTo(actor) {
		return nil, fmt.Errorf("%w: OS %s", entity.ErrNotFound, osID)
	}
	return os, nil
}

// parsePublishTimestamp combines a date and an optional HH:MM time into the
// scheduled publish timestamp. Missing time defaults to 10:00.
func parsePublishTimestamp(date, horario string) (time.Time, error) {
	if strings.TrimSpace(horario) == "" {
		horario = defaultPublishHour
	}
	if err := utils.ValidateDate(date); err != nil {
		return time.Time{}, err
	}
	if err := utils.ValidateHorario(horario); err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, horario), time.Local)
}

func applyWorkOrderPatch(os *entity.WorkOrder, patch entity.WorkOrderPatch) []string {
	var changed []string
	if patch.Titulo != nil && *patch.Titulo != os.Titulo {
		os.Titulo = *patch.Titulo
		changed = append(changed, "titulo")
	}
	if patch.Descricao != nil && *patch.Descricao != os.Descricao {
		os.Descricao = *patch.Descricao
		changed = append(changed, "descricao")
	}
	if patch.Marca != nil && *patch.Marca != os.Marca {
		os.Marca = *patch.Marca
		changed = append(changed, "marca")
	}
	if patch.Objetivo != nil && *patch.Objetivo != os.Objetivo {
		os.Objetivo = *patch.Objetivo
		changed = append(changed, "objetivo")
	}
	if patch.Tipo != nil && *patch.Tipo != os.Tipo {
		os.Tipo = *patch.Tipo
		changed = append(changed, "tipo")
	}
	if patch.Status != nil && *patch.Status != os.Status {
		os.Status = *patch.Status
		changed = append(changed, "status")
	}
	if patch.Prioridade != nil && *patch.Prioridade != os.Prioridade {
		os.Prioridade = *patch.Prioridade
		changed = append(changed, "prioridade")
	}
	if patch.Gancho != nil && *patch.Gancho != os.Gancho {
		os.Gancho = *patch.Gancho
		changed = append(changed, "gancho")
	}
	if patch.CTA != nil && *patch.CTA != os.CTA {
		os.CTA = *patch.CTA
		changed = append(changed, "cta")
	}
	if patch.Roteiro != nil && *patch.Roteiro != os.Roteiro {
		os.Roteiro = *patch.Roteiro
		changed = append(changed, "roteiro")
	}
	if patch.Legenda != nil && *patch.Legenda != os.Legenda {
		os.Legenda = *patch.Legenda
		changed = append(changed, "legenda")
	}
	if patch.Prazo != nil && *patch.Prazo != os.Prazo {
		os.Prazo = *patch.Prazo
		changed = append(changed, "prazo")
	}
	if patch.ResponsavelAtual != nil && *patch.ResponsavelAtual != os.ResponsavelAtual {
		os.ResponsavelAtual = *patch.ResponsavelAtual
		changed = append(changed, "responsavel_atual")
	}
	if patch.Responsaveis != nil {
		os.Responsaveis = *patch.Responsaveis
		changed = append(changed, "responsaveis")
	}
	return changed
}
