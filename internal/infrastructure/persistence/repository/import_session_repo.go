package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/infrastructure/persistence/sqlite"
)

// ImportSessionRepository implements port.ImportSessionRepository
type ImportSessionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewImportSessionRepository creates a new import session repository
func NewImportSessionRepository(db *sql.DB, logger *zap.Logger) port.ImportSessionRepository {
	return &ImportSessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the session record before the commit loop runs
func (r *ImportSessionRepository) Create(ctx context.Context, session *entity.ImportSession) error {
	query := `
		INSERT INTO import_sessions (
			id, org_id, user_id, source_type, tamanho_bytes,
			items_detected, items_created, items_skipped, error_details,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	errorDetails, err := marshalImportErrors(session.ErrorDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal error_details: %w", err)
	}

	_, err = sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		session.ID,
		session.OrgID,
		session.UserID,
		session.SourceType,
		session.TamanhoBytes,
		session.ItemsDetected,
		session.ItemsCreated,
		session.ItemsSkipped,
		errorDetails,
		session.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create import session", zap.String("id", session.ID), zap.Error(err))
		return fmt.Errorf("failed to create import session: %w", err)
	}

	return nil
}

// UpdateCounts writes the final counts and error details of a commit run
func (r *ImportSessionRepository) UpdateCounts(ctx context.Context, session *entity.ImportSession) error {
	query := `
		UPDATE import_sessions SET
			items_created = ?, items_skipped = ?, error_details = ?
		WHERE id = ?
	`

	errorDetails, err := marshalImportErrors(session.ErrorDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal error_details: %w", err)
	}

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		session.ItemsCreated,
		session.ItemsSkipped,
		errorDetails,
		session.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update import session counts", zap.String("id", session.ID), zap.Error(err))
		return fmt.Errorf("failed to update import session: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: sessão de importação %s", entity.ErrNotFound, session.ID)
	}

	return nil
}

func marshalImportErrors(errs []entity.ImportError) (string, error) {
	if len(errs) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(errs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Verify interface compliance
var _ port.ImportSessionRepository = (*ImportSessionRepository)(nil)
