package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/application/service"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/report"
	"github.com/conteudoflow/os-tracker/pkg/utils"
)

type stubImportService struct {
	parseFunc  func(ctx context.Context, text, brand string) (*service.ParseResult, error)
	commitFunc func(ctx context.Context, items []entity.ParsedIdea, actor entity.Actor, source entity.SourceType, size int) (*entity.CommitResult, error)
}

func (s *stubImportService) Parse(ctx context.Context, text, brand string) (*service.ParseResult, error) {
	return s.parseFunc(ctx, text, brand)
}

func (s *stubImportService) ParseFile(ctx context.Context, path, brand string) (*service.ParseResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubImportService) Commit(ctx context.Context, items []entity.ParsedIdea, actor entity.Actor, source entity.SourceType, size int) (*entity.CommitResult, error) {
	return s.commitFunc(ctx, items, actor, source, size)
}

type stubIdeaService struct {
	approveFunc func(ctx context.Context, id string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error)
	rejectFunc  func(ctx context.Context, id string, actor entity.Actor, motivo string) (*entity.Idea, error)
}

func (s *stubIdeaService) Approve(ctx context.Context, id string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error) {
	return s.approveFunc(ctx, id, actor)
}

func (s *stubIdeaService) Reject(ctx context.Context, id string, actor entity.Actor, motivo string) (*entity.Idea, error) {
	return s.rejectFunc(ctx, id, actor, motivo)
}

func (s *stubIdeaService) Edit(ctx context.Context, id string, patch entity.IdeaPatch, actor entity.Actor) (*entity.Idea, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubIdeaService) Get(ctx context.Context, id string) (*entity.Idea, error) {
	return nil, fmt.Errorf("%w: ideia %s", entity.ErrNotFound, id)
}

func (s *stubIdeaService) List(ctx context.Context, actor entity.Actor, status entity.IdeaStatus, limit, offset int) ([]*entity.Idea, error) {
	return nil, nil
}

type stubWorkOrderService struct {
	listFunc func(ctx context.Context, actor entity.Actor) ([]*entity.WorkOrder, error)
}

func (s *stubWorkOrderService) Create(ctx context.Context, input service.CreateWorkOrderInput, actor entity.Actor) (*entity.WorkOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubWorkOrderService) Update(ctx context.Context, id string, patch entity.WorkOrderPatch, actor entity.Actor) (*entity.WorkOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubWorkOrderService) Approve(ctx context.Context, id string, actor entity.Actor, input service.ApproveWorkOrderInput) (*entity.WorkOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubWorkOrderService) Reject(ctx context.Context, id string, actor entity.Actor, motivo string) (*entity.WorkOrder, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubWorkOrderService) Get(ctx context.Context, id string, actor entity.Actor) (*entity.WorkOrder, error) {
	return nil, fmt.Errorf("%w: OS %s", entity.ErrNotFound, id)
}

func (s *stubWorkOrderService) ListVisible(ctx context.Context, actor entity.Actor) ([]*entity.WorkOrder, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, actor)
	}
	return nil, nil
}

type stubAuditService struct{}

func (stubAuditService) ListByOS(ctx context.Context, osID string) ([]*entity.EventLog, error) {
	return nil, nil
}

func (stubAuditService) ListByIdeia(ctx context.Context, ideiaID string) ([]*entity.EventLog, error) {
	return nil, nil
}

func newTestServer(importSvc service.ImportService, ideaSvc service.IdeaService, osSvc service.WorkOrderService) *Server {
	logger := utils.NewServiceLogger(zap.NewNop())
	return NewServer(
		DefaultServerConfig(),
		importSvc,
		ideaSvc,
		osSvc,
		stubAuditService{},
		report.NewBoardExporter(zap.NewNop()),
		logger,
	)
}

func doRequest(t *testing.T, srv *Server, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func userHeaders() map[string]string {
	return map[string]string{
		"X-User-ID":           "user-1",
		"X-Org-ID":            "org-1",
		"X-User-Pode-Aprovar": "true",
	}
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(&stubImportService{}, &stubIdeaService{}, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestAPIRequiresUserHeader(t *testing.T) {
	srv := newTestServer(&stubImportService{}, &stubIdeaService{}, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodGet, "/api/ordens", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestParseText(t *testing.T) {
	importSvc := &stubImportService{
		parseFunc: func(ctx context.Context, text, brand string) (*service.ParseResult, error) {
			assert.Equal(t, "clinica", brand)
			return &service.ParseResult{
				Items: []entity.ParsedIdea{{Titulo: "Como fazer X", Descricao: "uma descrição longa o bastante"}},
				Metadata: entity.ImportMetadata{
					Provider:      "HEURISTIC",
					TextLength:    len(text),
					ItemsDetected: 1,
				},
			}, nil
		},
	}
	srv := newTestServer(importSvc, &stubIdeaService{}, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodPost, "/api/import/parse",
		gin.H{"texto": "IDEIA 1:\nTítulo: Como fazer X", "marca": "clinica"}, userHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Como fazer X")
	assert.Contains(t, w.Body.String(), "HEURISTIC")
}

func TestParseTextRequiresBody(t *testing.T) {
	srv := newTestServer(&stubImportService{}, &stubIdeaService{}, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodPost, "/api/import/parse", gin.H{}, userHeaders())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommitImportForwardsActor(t *testing.T) {
	var gotActor entity.Actor
	importSvc := &stubImportService{
		commitFunc: func(ctx context.Context, items []entity.ParsedIdea, actor entity.Actor, source entity.SourceType, size int) (*entity.CommitResult, error) {
			gotActor = actor
			return &entity.CommitResult{Created: len(items)}, nil
		},
	}
	srv := newTestServer(importSvc, &stubIdeaService{}, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodPost, "/api/import/commit",
		gin.H{"items": []gin.H{{"titulo": "Como fazer X", "descricao": "descrição"}}}, userHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", gotActor.ID)
	assert.Equal(t, "org-1", gotActor.OrgID)
	assert.True(t, gotActor.PodeAprovar)
}

func TestApproveIdeaStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"permission denied", fmt.Errorf("%w: sem permissão", entity.ErrPermissionDenied), http.StatusForbidden},
		{"not found", fmt.Errorf("%w: ideia x", entity.ErrNotFound), http.StatusNotFound},
		{"already decided", fmt.Errorf("%w: ideia já aprovada", entity.ErrInvalidState), http.StatusConflict},
		{"validation", fmt.Errorf("%w: dado inválido", entity.ErrValidation), http.StatusBadRequest},
		{"internal", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ideaSvc := &stubIdeaService{
				approveFunc: func(ctx context.Context, id string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error) {
					return nil, nil, tt.err
				},
			}
			srv := newTestServer(&stubImportService{}, ideaSvc, &stubWorkOrderService{})

			w := doRequest(t, srv, http.MethodPost, "/api/ideias/ideia-1/approve", gin.H{}, userHeaders())

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestApproveIdeaReturnsWorkOrder(t *testing.T) {
	ideaSvc := &stubIdeaService{
		approveFunc: func(ctx context.Context, id string, actor entity.Actor) (*entity.Idea, *entity.WorkOrder, error) {
			idea := &entity.Idea{ID: id, Status: entity.IdeaAprovada}
			os := &entity.WorkOrder{ID: "os-1", Status: entity.OSRoteiro}
			return idea, os, nil
		},
	}
	srv := newTestServer(&stubImportService{}, ideaSvc, &stubWorkOrderService{})

	w := doRequest(t, srv, http.MethodPost, "/api/ideias/ideia-1/approve", gin.H{}, userHeaders())

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    ApproveIdeaResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, entity.IdeaAprovada, resp.Data.Ideia.Status)
	assert.Equal(t, "os-1", resp.Data.OS.ID)
}

func TestExportBoardStreamsWorkbook(t *testing.T) {
	now := time.Now()
	osSvc := &stubWorkOrderService{
		listFunc: func(ctx context.Context, actor entity.Actor) ([]*entity.WorkOrder, error) {
			return []*entity.WorkOrder{{
				ID:        "os-1",
				Titulo:    "Reels de lançamento",
				Status:    entity.OSEdicao,
				CreatedAt: now,
				UpdatedAt: now,
			}}, nil
		},
	}
	srv := newTestServer(&stubImportService{}, &stubIdeaService{}, osSvc)

	w := doRequest(t, srv, http.MethodGet, "/api/ordens/export", nil, userHeaders())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}
