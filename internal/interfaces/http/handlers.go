package http

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/conteudoflow/os-tracker/internal/application/service"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/report"
	"github.com/conteudoflow/os-tracker/pkg/utils"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	importService    service.ImportService
	ideaService      service.IdeaService
	workOrderService service.WorkOrderService
	auditService     service.AuditService
	exporter         *report.BoardExporter
	maxUploadBytes   int64
	logger           Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	importService service.ImportService,
	ideaService service.IdeaService,
	workOrderService service.WorkOrderService,
	auditService service.AuditService,
	exporter *report.BoardExporter,
	maxUploadBytes int64,
	logger Logger,
) *Handlers {
	return &Handlers{
		importService:    importService,
		ideaService:      ideaService,
		workOrderService: workOrderService,
		auditService:     auditService,
		exporter:         exporter,
		maxUploadBytes:   maxUploadBytes,
		logger:           logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ParseTextRequest is the body of POST /api/import/parse
type ParseTextRequest struct {
	Texto string `json:"texto" binding:"required"`
	Marca string `json:"marca"`
}

// CommitImportRequest is the body of POST /api/import/commit
type CommitImportRequest struct {
	Items      []entity.ParsedIdea `json:"items" binding:"required"`
	SourceType entity.SourceType   `json:"source_type"`
	InputSize  int                 `json:"input_size"`
}

// RejectRequest carries the mandatory rejection reason
type RejectRequest struct {
	Motivo string `json:"motivo"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// ParseText handles POST /api/import/parse
func (h *Handlers) ParseText(c *gin.Context) {
	var req ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "texto is required")
		return
	}

	result, err := h.importService.Parse(c.Request.Context(), utils.SanitizeText(req.Texto), req.Marca)
	if err != nil {
		h.fail(c, err, "parse failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// ParseUpload handles POST /api/import/upload. Accepts a multipart file
// (pdf, txt or md) plus an optional marca form field.
func (h *Handlers) ParseUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.badRequest(c, "file is required")
		return
	}
	if file.Size > h.maxUploadBytes {
		h.badRequest(c, fmt.Sprintf("file exceeds %d bytes", h.maxUploadBytes))
		return
	}

	// Land the upload in a temp file so the loader can open it by path
	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		h.logger.Error("Failed to save upload", "error", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to store upload"})
		return
	}
	defer os.Remove(tmpPath)

	result, err := h.importService.ParseFile(c.Request.Context(), tmpPath, c.PostForm("marca"))
	if err != nil {
		h.fail(c, err, "parse failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// CommitImport handles POST /api/import/commit
func (h *Handlers) CommitImport(c *gin.Context) {
	var req CommitImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "items are required")
		return
	}

	source := req.SourceType
	if source == "" {
		source = entity.SourceTextPaste
	}

	result, err := h.importService.Commit(c.Request.Context(), req.Items, actorFrom(c), source, req.InputSize)
	if err != nil {
		h.fail(c, err, "commit failed")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

// ListIdeas handles GET /api/ideias
func (h *Handlers) ListIdeas(c *gin.Context) {
	limit, offset := pagination(c)
	status := entity.IdeaStatus(c.Query("status"))

	ideas, err := h.ideaService.List(c.Request.Context(), actorFrom(c), status, limit, offset)
	if err != nil {
		h.fail(c, err, "failed to list ideas")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: ideas})
}

// GetIdea handles GET /api/ideias/:id
func (h *Handlers) GetIdea(c *gin.Context) {
	idea, err := h.ideaService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to get idea")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: idea})
}

// EditIdea handles PATCH /api/ideias/:id
func (h *Handlers) EditIdea(c *gin.Context) {
	var patch entity.IdeaPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "invalid patch body")
		return
	}

	idea, err := h.ideaService.Edit(c.Request.Context(), c.Param("id"), patch, actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to edit idea")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: idea})
}

// ApproveIdeaResponse pairs the approved idea with the work order spawned
// from it.
type ApproveIdeaResponse struct {
	Ideia *entity.Idea      `json:"ideia"`
	OS    *entity.WorkOrder `json:"os"`
}

// ApproveIdea handles POST /api/ideias/:id/approve
func (h *Handlers) ApproveIdea(c *gin.Context) {
	idea, os, err := h.ideaService.Approve(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to approve idea")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: ApproveIdeaResponse{Ideia: idea, OS: os}})
}

// RejectIdea handles POST /api/ideias/:id/reject
func (h *Handlers) RejectIdea(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	idea, err := h.ideaService.Reject(c.Request.Context(), c.Param("id"), actorFrom(c), req.Motivo)
	if err != nil {
		h.fail(c, err, "failed to reject idea")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: idea})
}

// ListIdeaLogs handles GET /api/ideias/:id/logs
func (h *Handlers) ListIdeaLogs(c *gin.Context) {
	events, err := h.auditService.ListByIdeia(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to list idea events")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

// CreateWorkOrder handles POST /api/ordens
func (h *Handlers) CreateWorkOrder(c *gin.Context) {
	var input service.CreateWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	os, err := h.workOrderService.Create(c.Request.Context(), input, actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to create work order")
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: os})
}

// UpdateWorkOrder handles PATCH /api/ordens/:id
func (h *Handlers) UpdateWorkOrder(c *gin.Context) {
	var patch entity.WorkOrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.badRequest(c, "invalid patch body")
		return
	}

	os, err := h.workOrderService.Update(c.Request.Context(), c.Param("id"), patch, actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to update work order")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: os})
}

// ApproveWorkOrder handles POST /api/ordens/:id/approve
func (h *Handlers) ApproveWorkOrder(c *gin.Context) {
	var input service.ApproveWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	os, err := h.workOrderService.Approve(c.Request.Context(), c.Param("id"), actorFrom(c), input)
	if err != nil {
		h.fail(c, err, "failed to approve work order")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: os})
}

// RejectWorkOrder handles POST /api/ordens/:id/reject
func (h *Handlers) RejectWorkOrder(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body")
		return
	}

	os, err := h.workOrderService.Reject(c.Request.Context(), c.Param("id"), actorFrom(c), req.Motivo)
	if err != nil {
		h.fail(c, err, "failed to reject work order")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: os})
}

// GetWorkOrder handles GET /api/ordens/:id
func (h *Handlers) GetWorkOrder(c *gin.Context) {
	os, err := h.workOrderService.Get(c.Request.Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to get work order")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: os})
}

// ListWorkOrders handles GET /api/ordens
func (h *Handlers) ListWorkOrders(c *gin.Context) {
	orders, err := h.workOrderService.ListVisible(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to list work orders")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: orders})
}

// ExportBoard handles GET /api/ordens/export, streaming the visible board
// as an xlsx workbook.
func (h *Handlers) ExportBoard(c *gin.Context) {
	orders, err := h.workOrderService.ListVisible(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err, "failed to list work orders")
		return
	}

	filename := fmt.Sprintf("ordens_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.exporter.Export(orders, c.Writer); err != nil {
		h.logger.Error("Failed to export board", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
}

// ListWorkOrderLogs handles GET /api/ordens/:id/logs
func (h *Handlers) ListWorkOrderLogs(c *gin.Context) {
	events, err := h.auditService.ListByOS(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to list OS events")
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: events})
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps a domain error to its HTTP status. Unknown errors become 500s
// with a generic message so internals stay out of responses.
func (h *Handlers) fail(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	msg := fallback

	switch {
	case errors.Is(err, entity.ErrValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, entity.ErrPermissionDenied):
		status = http.StatusForbidden
		msg = err.Error()
	case errors.Is(err, entity.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, entity.ErrInvalidState):
		status = http.StatusConflict
		msg = err.Error()
	default:
		h.logger.Error(fallback, "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(status, Response{Success: false, Error: msg})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = queryInt(c, "limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset = queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
