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

// IdeaRepository implements port.IdeaRepository
type IdeaRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewIdeaRepository creates a new idea repository
func NewIdeaRepository(db *sql.DB, logger *zap.Logger) port.IdeaRepository {
	return &IdeaRepository{
		db:     db,
		logger: logger,
	}
}

const ideaColumns = `
	id, titulo, descricao, marca, objetivo, tipo, prioridade, canais,
	gancho, cta, roteiro, legenda, prazo, links_midia, status,
	aprovada_por, rejeitada_por, motivo_rejeicao, os_criada_id,
	org_id, criada_por, created_at, updated_at
`

// Create inserts a new idea
func (r *IdeaRepository) Create(ctx context.Context, idea *entity.Idea) error {
	query := `
		INSERT INTO ideias (` + ideaColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	canais, err := marshalStrings(idea.Canais)
	if err != nil {
		return fmt.Errorf("failed to marshal canais: %w", err)
	}
	links, err := marshalStrings(idea.LinksMidia)
	if err != nil {
		return fmt.Errorf("failed to marshal links_midia: %w", err)
	}

	_, err = sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		idea.ID,
		idea.Titulo,
		idea.Descricao,
		idea.Marca,
		idea.Objetivo,
		idea.Tipo,
		idea.Prioridade,
		canais,
		idea.Gancho,
		idea.CTA,
		idea.Roteiro,
		idea.Legenda,
		idea.Prazo,
		links,
		idea.Status,
		idea.AprovadaPor,
		idea.RejeitadaPor,
		idea.MotivoRejeicao,
		idea.OSCriadaID,
		idea.OrgID,
		idea.CriadaPor,
		idea.CreatedAt,
		idea.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create idea", zap.String("id", idea.ID), zap.Error(err))
		return fmt.Errorf("failed to create idea: %w", err)
	}

	return nil
}

// GetByID retrieves an idea by its ID. Returns nil, nil when not found.
func (r *IdeaRepository) GetByID(ctx context.Context, id string) (*entity.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideias WHERE id = ?`

	idea, err := scanIdea(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get idea by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get idea: %w", err)
	}

	return idea, nil
}

// FindByTituloMarca looks up an idea by title and brand within an org.
// Returns nil, nil when no idea matches; it backs the import dedup check.
func (r *IdeaRepository) FindByTituloMarca(ctx context.Context, titulo, marca, orgID string) (*entity.Idea, error) {
	query := `
		SELECT ` + ideaColumns + `
		FROM ideias
		WHERE titulo = ? AND marca = ? AND org_id = ?
		LIMIT 1
	`

	idea, err := scanIdea(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, titulo, marca, orgID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find idea by titulo and marca",
			zap.String("titulo", titulo), zap.String("marca", marca), zap.Error(err))
		return nil, fmt.Errorf("failed to find idea: %w", err)
	}

	return idea, nil
}

// Update writes the full idea row
func (r *IdeaRepository) Update(ctx context.Context, idea *entity.Idea) error {
	query := `
		UPDATE ideias SET
			titulo = ?, descricao = ?, marca = ?, objetivo = ?, tipo = ?,
			prioridade = ?, canais = ?, gancho = ?, cta = ?, roteiro = ?,
			legenda = ?, prazo = ?, links_midia = ?, status = ?,
			aprovada_por = ?, rejeitada_por = ?, motivo_rejeicao = ?,
			os_criada_id = ?, updated_at = ?
		WHERE id = ?
	`

	canais, err := marshalStrings(idea.Canais)
	if err != nil {
		return fmt.Errorf("failed to marshal canais: %w", err)
	}
	links, err := marshalStrings(idea.LinksMidia)
	if err != nil {
		return fmt.Errorf("failed to marshal links_midia: %w", err)
	}

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		idea.Titulo,
		idea.Descricao,
		idea.Marca,
		idea.Objetivo,
		idea.Tipo,
		idea.Prioridade,
		canais,
		idea.Gancho,
		idea.CTA,
		idea.Roteiro,
		idea.Legenda,
		idea.Prazo,
		links,
		idea.Status,
		idea.AprovadaPor,
		idea.RejeitadaPor,
		idea.MotivoRejeicao,
		idea.OSCriadaID,
		idea.UpdatedAt,
		idea.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update idea", zap.String("id", idea.ID), zap.Error(err))
		return fmt.Errorf("failed to update idea: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: ideia %s", entity.ErrNotFound, idea.ID)
	}

	return nil
}

// ListByOrg lists ideas of an org, optionally filtered by status
func (r *IdeaRepository) ListByOrg(ctx context.Context, orgID string, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideias WHERE org_id = ?`
	args := []interface{}{orgID}

	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list ideas", zap.String("org_id", orgID), zap.Error(err))
		return nil, fmt.Errorf("failed to list ideas: %w", err)
	}
	defer rows.Close()

	var ideas []*entity.Idea
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}

	return ideas, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIdea(row rowScanner) (*entity.Idea, error) {
	var idea entity.Idea
	var canais, links string

	err := row.Scan(
		&idea.ID,
		&idea.Titulo,
		&idea.Descricao,
		&idea.Marca,
		&idea.Objetivo,
		&idea.Tipo,
		&idea.Prioridade,
		&canais,
		&idea.Gancho,
		&idea.CTA,
		&idea.Roteiro,
		&idea.Legenda,
		&idea.Prazo,
		&links,
		&idea.Status,
		&idea.AprovadaPor,
		&idea.RejeitadaPor,
		&idea.MotivoRejeicao,
		&idea.OSCriadaID,
		&idea.OrgID,
		&idea.CriadaPor,
		&idea.CreatedAt,
		&idea.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalStrings(canais, &idea.Canais); err != nil {
		return nil, fmt.Errorf("failed to unmarshal canais: %w", err)
	}
	if err := unmarshalStrings(links, &idea.LinksMidia); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links_midia: %w", err)
	}

	return &idea, nil
}

// marshalStrings serializes a string slice to its JSON column form.
// Nil and empty slices are both stored as "[]".
func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(data string, dest *[]string) error {
	if data == "" || data == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(data), dest)
}

// Verify interface compliance
var _ port.IdeaRepository = (*IdeaRepository)(nil)
