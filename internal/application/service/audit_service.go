package service

import (
	"context"
	"fmt"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// AuditService exposes the append-only event trail for reading.
type AuditService interface {
	ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error)
	ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error)
}

type auditServiceImpl struct {
	eventRepo port.EventLogRepository
	logger    Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(eventRepo port.EventLogRepository, logger Logger) AuditService {
	return &auditServiceImpl{
		eventRepo: eventRepo,
		logger:    logger,
	}
}

func (s *auditServiceImpl) ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error) {
	events, err := s.eventRepo.ListByOS(ctx, osID)
	if err != nil {
		s.logger.Error("Failed to list OS events", "error", err, "os_id", osID)
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *auditServiceImpl) ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error) {
	events, err := s.eventRepo.ListByIdeia(ctx, ideiaID)
	if err != nil {
		s.logger.Error("Failed to list idea events", "error", err, "ideia_id", ideiaID)
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
