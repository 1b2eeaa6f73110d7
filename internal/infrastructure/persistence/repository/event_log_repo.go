package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/infrastructure/persistence/sqlite"
)

// EventLogRepository implements port.EventLogRepository. The table is
// append-only; there are no update or delete paths.
type EventLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEventLogRepository creates a new event log repository
func NewEventLogRepository(db *sql.DB, logger *zap.Logger) port.EventLogRepository {
	return &EventLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts an audit trail entry
func (r *EventLogRepository) Append(ctx context.Context, event *entity.EventLog) error {
	query := `
		INSERT INTO logs_evento (id, os_id, ideia_id, autor, acao, detalhe)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		event.ID,
		nullableString(event.OSID),
		nullableString(event.IdeiaID),
		event.Autor,
		event.Acao,
		event.Detalhe,
	)
	if err != nil {
		r.logger.Error("Failed to append event", zap.String("acao", string(event.Acao)), zap.Error(err))
		return fmt.Errorf("failed to append event: %w", err)
	}

	return nil
}

// ListByOS retrieves the audit trail of a work order, oldest first
func (r *EventLogRepository) ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error) {
	return r.list(ctx, "os_id", osID)
}

// ListByIdeia retrieves the audit trail of an idea, oldest first
func (r *EventLogRepository) ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error) {
	return r.list(ctx, "ideia_id", ideiaID)
}

func (r *EventLogRepository) list(ctx context.Context, column, id string) ([]*entity.EventLog, error) {
	query := fmt.Sprintf(`
		SELECT id, os_id, ideia_id, autor, acao, detalhe, created_at
		FROM logs_evento
		WHERE %s = ?
		ORDER BY created_at ASC
	`, column)

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to list events", zap.String(column, id), zap.Error(err))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*entity.EventLog
	for rows.Next() {
		var event entity.EventLog
		var osID, ideiaID sql.NullString
		err := rows.Scan(
			&event.ID,
			&osID,
			&ideiaID,
			&event.Autor,
			&event.Acao,
			&event.Detalhe,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.OSID = osID.String
		event.IdeiaID = ideiaID.String
		events = append(events, &event)
	}

	return events, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// Verify interface compliance
var _ port.EventLogRepository = (*EventLogRepository)(nil)
