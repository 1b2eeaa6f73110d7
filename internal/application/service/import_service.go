package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ParseResult bundles the parsed items with the run metadata.
type ParseResult struct {
	Items    []entity.ParsedIdea   `json:"items"`
	Metadata entity.ImportMetadata `json:"metadata"`
}

// ImportService runs the ingestion pipeline: parse free text into idea
// candidates, then commit the ones a human accepted.
type ImportService interface {
	Parse(ctx context.Context, text, defaultBrand string) (*ParseResult, error)
	ParseFile(ctx context.Context, path, defaultBrand string) (*ParseResult, error)
	Commit(ctx context.Context, items []entity.ParsedIdea, actor entity.Actor, source entity.SourceType, inputSize int) (*entity.CommitResult, error)
}

type importServiceImpl struct {
	provider    port.ParseProvider
	fileLoader  port.FileLoader
	ideaRepo    port.IdeaRepository
	sessionRepo port.ImportSessionRepository
	eventRepo   port.EventLogRepository
	logger      Logger
}

// NewImportService creates a new ImportService
func NewImportService(
	provider port.ParseProvider,
	fileLoader port.FileLoader,
	ideaRepo port.IdeaRepository,
	sessionRepo port.ImportSessionRepository,
	eventRepo port.EventLogRepository,
	logger Logger,
) ImportService {
	return &importServiceImpl{
		provider:    provider,
		fileLoader:  fileLoader,
		ideaRepo:    ideaRepo,
		sessionRepo: sessionRepo,
		eventRepo:   eventRepo,
		logger:      logger,
	}
}

// Parse runs the configured provider over the text. Malformed input yields
// zero items, never an error.
func (s *importServiceImpl) Parse(ctx context.Context, text, defaultBrand string) (*ParseResult, error) {
	items, metadata, err := s.provider.Parse(ctx, text, defaultBrand)
	if err != nil {
		s.logger.Error("Parse failed", "error", err, "provider", s.provider.Name())
		return nil, fmt.Errorf("parse: %w", err)
	}

	return &ParseResult{Items: items, Metadata: metadata}, nil
}

// ParseFile extracts the text of an uploaded file and parses it.
func (s *importServiceImpl) ParseFile(ctx context.Context, path, defaultBrand string) (*ParseResult, error) {
	text, err := s.fileLoader.LoadText(path)
	if err != nil {
		s.logger.Error("Failed to load uploaded file", "error", err, "path", path)
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	return s.Parse(ctx, text, defaultBrand)
}

// Commit persists accepted items as pending ideas. Items whose (title, brand,
// org) already exists are skipped; per-item insert failures are collected and
// the loop continues. One ImportSession audit record frames the run.
func (s *importServiceImpl) Commit(ctx context.Context, items []entity.ParsedIdea, actor entity.Actor, source entity.SourceType, inputSize int) (*entity.CommitResult, error) {
	session := &entity.ImportSession{
		ID:            uuid.NewString(),
		OrgID:         actor.OrgID,
		UserID:        actor.ID,
		SourceType:    source,
		TamanhoBytes:  inputSize,
		ItemsDetected: len(items),
		CreatedAt:     time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		s.logger.Error("Failed to create import session", "error", err)
		return nil, fmt.Errorf("create import session: %w", err)
	}

	result := &entity.CommitResult{Errors: []entity.ImportError{}}

	for _, item := range items {
		existing, err := s.ideaRepo.FindByTituloMarca(ctx, item.Titulo, item.Marca, actor.OrgID)
		if err != nil {
			s.logger.Error("Duplicate check failed", "error", err, "titulo", item.Titulo)
			result.Errors = append(result.Errors, entity.ImportError{Item: item.Titulo, Error: err.Error()})
			continue
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		idea := ideaFromParsed(item, actor)
		if err := s.ideaRepo.Create(ctx, idea); err != nil {
			s.logger.Error("Failed to create idea", "error", err, "titulo", item.Titulo)
			result.Errors = append(result.Errors, entity.ImportError{Item: item.Titulo, Error: err.Error()})
			continue
		}

		result.Created++

		event := &entity.EventLog{
			ID:      uuid.NewString(),
			IdeiaID: idea.ID,
			Autor:   actor.ID,
			Acao:    entity.AcaoCreate,
			Detalhe: fmt.Sprintf("Ideia importada: %s", idea.Titulo),
		}
		if err := s.eventRepo.Append(ctx, event); err != nil {
			s.logger.Warn("Failed to append import audit entry", "error", err, "ideia_id", idea.ID)
		}
	}

	session.ItemsCreated = result.Created
	session.ItemsSkipped = result.Skipped
	session.ErrorDetails = result.Errors
	if err := s.sessionRepo.UpdateCounts(ctx, session); err != nil {
		s.logger.Warn("Failed to update import session counts", "error", err, "session_id", session.ID)
	}

	s.logger.Info("Import commit finished",
		"session_id", session.ID,
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	return result, nil
}

func ideaFromParsed(item entity.ParsedIdea, actor entity.Actor) *entity.Idea {
	now := time.Now()
	return &entity.Idea{
		ID:         uuid.NewString(),
		Titulo:     item.Titulo,
		Descricao:  item.Descricao,
		Marca:      item.Marca,
		Objetivo:   item.Objetivo,
		Tipo:       item.Tipo,
		Prioridade: item.Prioridade,
		Canais:     item.Canais,
		Gancho:     item.Gancho,
		CTA:        item.CTA,
		Roteiro:    item.Roteiro,
		Legenda:    item.Legenda,
		Prazo:      item.Prazo,
		LinksMidia: item.LinksMidia,
		Status:     entity.IdeaPendente,
		OrgID:      actor.OrgID,
		CriadaPor:  actor.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
