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

// WorkOrderRepository implements port.WorkOrderRepository
type WorkOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *sql.DB, logger *zap.Logger) port.WorkOrderRepository {
	return &WorkOrderRepository{
		db:     db,
		logger: logger,
	}
}

const workOrderColumns = `
	id, titulo, descricao, marca, objetivo, tipo, status, prioridade,
	canais, gancho, cta, roteiro, legenda, prazo, links_midia,
	data_publicacao, prazo_sla, responsavel_atual, responsaveis,
	aprovado_crispim, aprovado_marca, org_id, criada_por,
	created_at, updated_at
`

// Create inserts a new work order
func (r *WorkOrderRepository) Create(ctx context.Context, os *entity.WorkOrder) error {
	query := `
		INSERT INTO ordens_de_servico (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	canais, err := marshalStrings(os.Canais)
	if err != nil {
		return fmt.Errorf("failed to marshal canais: %w", err)
	}
	links, err := marshalStrings(os.LinksMidia)
	if err != nil {
		return fmt.Errorf("failed to marshal links_midia: %w", err)
	}
	responsaveis, err := marshalStringMap(os.Responsaveis)
	if err != nil {
		return fmt.Errorf("failed to marshal responsaveis: %w", err)
	}

	_, err = sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		os.ID,
		os.Titulo,
		os.Descricao,
		os.Marca,
		os.Objetivo,
		os.Tipo,
		os.Status,
		os.Prioridade,
		canais,
		os.Gancho,
		os.CTA,
		os.Roteiro,
		os.Legenda,
		os.Prazo,
		links,
		os.DataPublicacao,
		os.PrazoSLA,
		os.ResponsavelAtual,
		responsaveis,
		os.AprovadoCrispim,
		os.AprovadoMarca,
		os.OrgID,
		os.CriadaPor,
		os.CreatedAt,
		os.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create work order", zap.String("id", os.ID), zap.Error(err))
		return fmt.Errorf("failed to create work order: %w", err)
	}

	return nil
}

// GetByID retrieves a work order by its ID. Returns nil, nil when not found.
func (r *WorkOrderRepository) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM ordens_de_servico WHERE id = ?`

	os, err := scanWorkOrder(sqlite.ExecutorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get work order by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get work order: %w", err)
	}

	return os, nil
}

// Update writes the full work order row
func (r *WorkOrderRepository) Update(ctx context.Context, os *entity.WorkOrder) error {
	query := `
		UPDATE ordens_de_servico SET
			titulo = ?, descricao = ?, marca = ?, objetivo = ?, tipo = ?,
			status = ?, prioridade = ?, canais = ?, gancho = ?, cta = ?,
			roteiro = ?, legenda = ?, prazo = ?, links_midia = ?,
			data_publicacao = ?, prazo_sla = ?, responsavel_atual = ?,
			responsaveis = ?, aprovado_crispim = ?, aprovado_marca = ?,
			updated_at = ?
		WHERE id = ?
	`

	canais, err := marshalStrings(os.Canais)
	if err != nil {
		return fmt.Errorf("failed to marshal canais: %w", err)
	}
	links, err := marshalStrings(os.LinksMidia)
	if err != nil {
		return fmt.Errorf("failed to marshal links_midia: %w", err)
	}
	responsaveis, err := marshalStringMap(os.Responsaveis)
	if err != nil {
		return fmt.Errorf("failed to marshal responsaveis: %w", err)
	}

	result, err := sqlite.ExecutorFrom(ctx, r.db).ExecContext(ctx, query,
		os.Titulo,
		os.Descricao,
		os.Marca,
		os.Objetivo,
		os.Tipo,
		os.Status,
		os.Prioridade,
		canais,
		os.Gancho,
		os.CTA,
		os.Roteiro,
		os.Legenda,
		os.Prazo,
		links,
		os.DataPublicacao,
		os.PrazoSLA,
		os.ResponsavelAtual,
		responsaveis,
		os.AprovadoCrispim,
		os.AprovadoMarca,
		os.UpdatedAt,
		os.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update work order", zap.String("id", os.ID), zap.Error(err))
		return fmt.Errorf("failed to update work order: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: OS %s", entity.ErrNotFound, os.ID)
	}

	return nil
}

// ListByOrg lists all work orders of an org ordered by creation time
func (r *WorkOrderRepository) ListByOrg(ctx context.Context, orgID string) ([]*entity.WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM ordens_de_servico
		WHERE org_id = ?
		ORDER BY created_at DESC
	`

	rows, err := sqlite.ExecutorFrom(ctx, r.db).QueryContext(ctx, query, orgID)
	if err != nil {
		r.logger.Error("Failed to list work orders", zap.String("org_id", orgID), zap.Error(err))
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.WorkOrder
	for rows.Next() {
		os, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work order: %w", err)
		}
		orders = append(orders, os)
	}

	return orders, rows.Err()
}

func scanWorkOrder(row rowScanner) (*entity.WorkOrder, error) {
	var os entity.WorkOrder
	var canais, links, responsaveis string
	var dataPublicacao, prazoSLA sql.NullTime

	err := row.Scan(
		&os.ID,
		&os.Titulo,
		&os.Descricao,
		&os.Marca,
		&os.Objetivo,
		&os.Tipo,
		&os.Status,
		&os.Prioridade,
		&canais,
		&os.Gancho,
		&os.CTA,
		&os.Roteiro,
		&os.Legenda,
		&os.Prazo,
		&links,
		&dataPublicacao,
		&prazoSLA,
		&os.ResponsavelAtual,
		&responsaveis,
		&os.AprovadoCrispim,
		&os.AprovadoMarca,
		&os.OrgID,
		&os.CriadaPor,
		&os.CreatedAt,
		&os.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dataPublicacao.Valid {
		t := dataPublicacao.Time
		os.DataPublicacao = &t
	}
	if prazoSLA.Valid {
		t := prazoSLA.Time
		os.PrazoSLA = &t
	}

	if err := unmarshalStrings(canais, &os.Canais); err != nil {
		return nil, fmt.Errorf("failed to unmarshal canais: %w", err)
	}
	if err := unmarshalStrings(links, &os.LinksMidia); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links_midia: %w", err)
	}
	if err := unmarshalStringMap(responsaveis, &os.Responsaveis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal responsaveis: %w", err)
	}

	return &os, nil
}

func marshalStringMap(values map[string]string) (string, error) {
	if len(values) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStringMap(data string, dest *map[string]string) error {
	if data == "" || data == "{}" {
		return nil
	}
	return json.Unmarshal([]byte(data), dest)
}

// Verify interface compliance
var _ port.WorkOrderRepository = (*WorkOrderRepository)(nil)
