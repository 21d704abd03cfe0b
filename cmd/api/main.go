package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ack-hub/internal/api/http"
	"github.com/spec-kit/ack-hub/internal/api/http/handlers"
	"github.com/spec-kit/ack-hub/internal/auth"
	"github.com/spec-kit/ack-hub/internal/config"
	"github.com/spec-kit/ack-hub/internal/directory"
	"github.com/spec-kit/ack-hub/internal/events"
	"github.com/spec-kit/ack-hub/internal/export"
	"github.com/spec-kit/ack-hub/internal/idgen"
	"github.com/spec-kit/ack-hub/internal/observability"
	"github.com/spec-kit/ack-hub/internal/persistence"
	"github.com/spec-kit/ack-hub/internal/repository"
	"github.com/spec-kit/ack-hub/internal/service"
	"github.com/spec-kit/ack-hub/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var (
		catalogRepo    repository.CatalogRepository
		submissionRepo repository.SubmissionRepository
	)
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		catalogRepo = repository.NewPgCatalogRepository(pg.PoolHandle())
		submissionRepo = repository.NewPgSubmissionRepository(pg.PoolHandle())
	} else {
		catalogRepo = repository.NewMemoryCatalogRepository()
		submissionRepo = repository.NewMemorySubmissionRepository()
	}

	var (
		redis     *persistence.Redis
		draftRepo repository.DraftRepository
	)
	if cfg.Workflow.DraftStore == config.DraftStoreRedis {
		redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		draftRepo = repository.NewRedisDraftRepository(redis.Client, cfg.Workflow.DraftTTL())
	} else {
		draftRepo = repository.NewMemoryDraftRepository(cfg.Workflow.DraftTTL(), cfg.Workflow.CleanupInterval())
	}

	ids, err := idgen.NewGenerator(cfg.IDGen.MachineID)
	if err != nil {
		logger.Fatal("failed to init id generator", zap.Error(err))
	}

	renderer, err := export.NewPDFRenderer(export.Options{
		HeaderTitle: cfg.Export.HeaderTitle,
		FontPath:    cfg.Export.FontPath,
	})
	if err != nil {
		logger.Fatal("failed to init pdf renderer", zap.Error(err))
	}
	if cfg.Export.FontPath == "" {
		logger.Warn("EXPORT_FONT_PATH not set; Arabic text is left out of PDF exports")
	}

	dir := directory.Default(cfg.Directory.EmailDomain)
	resolver := auth.NewResolver(dir)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	dispatcher := events.NewInMemoryDispatcher()

	catalogService := service.NewCatalogService(service.CatalogDependencies{
		Repo:       catalogRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	if err := catalogService.EnsureBuiltins(ctx); err != nil {
		logger.Fatal("failed to seed built-in types", zap.Error(err))
	}

	submissionService := service.NewSubmissionService(service.SubmissionDependencies{
		Repo:       submissionRepo,
		Catalog:    catalogRepo,
		Resolver:   resolver,
		IDs:        ids,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		Drafts:      draftRepo,
		Catalog:     catalogService,
		Submissions: submissionService,
		Logger:      logger,
	})
	exportService := service.NewExportService(service.ExportDependencies{
		Submissions: submissionService,
		Catalog:     catalogRepo,
		Renderer:    renderer,
		Metrics:     metrics,
		Logger:      logger,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		Directory: dir,
		Resolver:  resolver,
		Tokens:    tokens,
		Logger:    logger,
	})

	notificationService := service.NewNotificationService(dispatcher, dir, nil, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(tokens, resolver)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		Forms:          handlers.NewFormsHandler(workflowService),
		Submissions:    handlers.NewSubmissionsHandler(submissionService, exportService),
		Metrics:        metrics,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
