package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/conteudoflow/os-tracker/internal/application/port"
	"github.com/conteudoflow/os-tracker/internal/application/service"
	"github.com/conteudoflow/os-tracker/internal/config"
	"github.com/conteudoflow/os-tracker/internal/domain/entity"
	"github.com/conteudoflow/os-tracker/internal/infrastructure/persistence/repository"
	"github.com/conteudoflow/os-tracker/internal/infrastructure/persistence/sqlite"
	httpserver "github.com/conteudoflow/os-tracker/internal/interfaces/http"
	"github.com/conteudoflow/os-tracker/internal/parser"
	"github.com/conteudoflow/os-tracker/internal/report"
	"github.com/conteudoflow/os-tracker/pkg/database"
	"github.com/conteudoflow/os-tracker/pkg/utils"
)

func main() {
	// Local .env overrides, missing file is fine
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting OS tracker",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Database and migrations
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	txManager := sqlite.NewDB(db.DB, logger)

	// Repositories
	ideaRepo := repository.NewIdeaRepository(db.DB, logger)
	osRepo := repository.NewWorkOrderRepository(db.DB, logger)
	sessionRepo := repository.NewImportSessionRepository(db.DB, logger)
	eventRepo := repository.NewEventLogRepository(db.DB, logger)

	// Parse provider
	channels := parser.ChannelConfig{
		PerBrand: cfg.Parser.BrandChannels,
		Default:  cfg.Parser.DefaultChannels,
	}
	heuristic := parser.NewHeuristicProvider(parser.DefaultClassifierConfig(), channels, logger)

	var provider port.ParseProvider = heuristic
	if cfg.Parser.Provider == "OPENAI" {
		provider = parser.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, heuristic, channels, logger)
	}
	logger.Info("Parse provider selected", zap.String("provider", provider.Name()))

	uploadLoader := parser.NewUploadLoader(logger)

	// Services
	svcLogger := utils.NewServiceLogger(logger)
	sla := slaFromConfig(cfg.SLA)

	importService := service.NewImportService(provider, uploadLoader, ideaRepo, sessionRepo, eventRepo, svcLogger)
	ideaService := service.NewIdeaService(ideaRepo, osRepo, eventRepo, txManager, sla, svcLogger)
	workOrderService := service.NewWorkOrderService(osRepo, eventRepo, txManager, sla, svcLogger)
	auditService := service.NewAuditService(eventRepo, svcLogger)

	exporter := report.NewBoardExporter(logger)

	// HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:           cfg.Server.Host,
			Port:           cfg.Server.Port,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			MaxUploadBytes: cfg.Parser.MaxUploadBytes,
		},
		importService,
		ideaService,
		workOrderService,
		auditService,
		exporter,
		svcLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// slaFromConfig translates the configured hour budgets into stage deadlines
func slaFromConfig(cfg config.SLAConfig) service.SLAConfig {
	return service.SLAConfig{
		PerStatus: map[entity.OSStatus]time.Duration{
			entity.OSRoteiro:     time.Duration(cfg.Roteiro) * time.Hour,
			entity.OSAudio:       time.Duration(cfg.Audio) * time.Hour,
			entity.OSCaptacao:    time.Duration(cfg.Captacao) * time.Hour,
			entity.OSEdicao:      time.Duration(cfg.Edicao) * time.Hour,
			entity.OSRevisao:     time.Duration(cfg.Revisao) * time.Hour,
			entity.OSAprovacao:   time.Duration(cfg.Aprovacao) * time.Hour,
			entity.OSAgendamento: time.Duration(cfg.Agendamento) * time.Hour,
		},
	}
}
