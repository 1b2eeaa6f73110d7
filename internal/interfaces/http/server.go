// Package http provides the HTTP adapter for the application layer.
// It translates requests to application service calls and maps domain
// errors to status codes.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conteudoflow/os-tracker/internal/application/service"
	"github.com/conteudoflow/os-tracker/internal/report"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:           "0.0.0.0",
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxUploadBytes: 10 << 20,
	}
}

// Server is the HTTP server adapter
type Server struct {
	config           ServerConfig
	httpServer       *http.Server
	router           *gin.Engine
	importService    service.ImportService
	ideaService      service.IdeaService
	workOrderService service.WorkOrderService
	auditService     service.AuditService
	exporter         *report.BoardExporter
	logger           Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	config ServerConfig,
	importService service.ImportService,
	ideaService service.IdeaService,
	workOrderService service.WorkOrderService,
	auditService service.AuditService,
	exporter *report.BoardExporter,
	logger Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:           config,
		router:           router,
		importService:    importService,
		ideaService:      ideaService,
		workOrderService: workOrderService,
		auditService:     auditService,
		exporter:         exporter,
		logger:           logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(
		s.importService,
		s.ideaService,
		s.workOrderService,
		s.auditService,
		s.exporter,
		s.config.MaxUploadBytes,
		s.logger,
	)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// API routes, everything below requires actor headers
	api := s.router.Group("/api")
	api.Use(actorMiddleware())
	{
		// Import pipeline
		api.POST("/import/parse", handlers.ParseText)
		api.POST("/import/upload", handlers.ParseUpload)
		api.POST("/import/commit", handlers.CommitImport)

		// Ideas
		api.GET("/ideias", handlers.ListIdeas)
		api.GET("/ideias/:id", handlers.GetIdea)
		api.PATCH("/ideias/:id", handlers.EditIdea)
		api.POST("/ideias/:id/approve", handlers.ApproveIdea)
		api.POST("/ideias/:id/reject", handlers.RejectIdea)
		api.GET("/ideias/:id/logs", handlers.ListIdeaLogs)

		// Work orders
		api.GET("/ordens", handlers.ListWorkOrders)
		api.GET("/ordens/export", handlers.ExportBoard)
		api.GET("/ordens/:id", handlers.GetWorkOrder)
		api.POST("/ordens", handlers.CreateWorkOrder)
		api.PATCH("/ordens/:id", handlers.UpdateWorkOrder)
		api.POST("/ordens/:id/approve", handlers.ApproveWorkOrder)
		api.POST("/ordens/:id/reject", handlers.RejectWorkOrder)
		api.GET("/ordens/:id/logs", handlers.ListWorkOrderLogs)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
