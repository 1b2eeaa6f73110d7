package port

import (
	"context"

	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// IdeaRepository defines persistence operations for Idea
type IdeaRepository interface {
	Create(ctx context.Context, idea *entity.Idea) error
	GetByID(ctx context.Context, id string) (*entity.Idea, error)
	// FindByTituloMarca returns nil, nil when no idea matches; it backs the
	// application-level duplicate check in the import commit loop.
	FindByTituloMarca(ctx context.Context, titulo, marca, orgID string) (*entity.Idea, error)
	Update(ctx context.Context, idea *entity.Idea) error
	ListByOrg(ctx context.Context, orgID string, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error)
}

// WorkOrderRepository defines persistence operations for WorkOrder
type WorkOrderRepository interface {
	Create(ctx context.Context, os *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	Update(ctx context.Context, os *entity.WorkOrder) error
	ListByOrg(ctx context.Context, orgID string) ([]*entity.WorkOrder, error)
}

// ImportSessionRepository defines persistence operations for ImportSession
type ImportSessionRepository interface {
	Create(ctx context.Context, session *entity.ImportSession) error
	UpdateCounts(ctx context.Context, session *entity.ImportSession) error
}

// EventLogRepository appends to and reads the audit trail. Entries are never
// updated or deleted.
type EventLogRepository interface {
	Append(ctx context.Context, event *entity.EventLog) error
	ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error)
	ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	// WithTransaction executes fn within a transaction. The transaction is
	// propagated through the context to repository calls.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
