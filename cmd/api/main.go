package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-service/internal/api/http"
	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/jobs"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/persistence"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	"github.com/spec-kit/helpdesk-service/internal/service"
	"github.com/spec-kit/helpdesk-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var (
		ticketStore repository.TicketStore
		userRepo    repository.UserRepository
	)
	if pg.Enabled() {
		ticketStore = repository.NewTicketStore(pg.PoolHandle())
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	} else {
		ticketStore = repository.NewMemoryTicketStore()
		userRepo = repository.NewMemoryUserRepository()
	}

	var numbers service.NumberGenerator
	switch cfg.Tickets.NumberStrategy {
	case config.NumberStrategySequence:
		numbers = service.NewRedisSequenceGenerator(redis.Client, cfg.Tickets.SequenceKey)
	default:
		numbers = service.NewRandomNumberGenerator(cfg.Tickets.NumberSeed)
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditLogWorker(service.NewAuditLogService(dispatcher, logger, metrics))

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{UserRepo: userRepo})
	created, err := authService.EnsureTechnician(ctx, cfg.Auth.BootstrapName, cfg.Auth.BootstrapEmail, cfg.Auth.BootstrapPassword)
	if err != nil {
		logger.Fatal("failed to bootstrap technician", zap.Error(err))
	}
	if created {
		logger.Info("bootstrap technician created", zap.String("email", cfg.Auth.BootstrapEmail))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      ticketStore,
		Numbers:    numbers,
		Dispatcher: dispatcher,
	})
	summaryService := service.NewSummaryService(ticketStore)

	if cfg.Jobs.SummarySnapshotCron != "" {
		snapshot, err := jobs.NewSummarySnapshot(cfg.Jobs.SummarySnapshotCron, summaryService, logger)
		if err != nil {
			logger.Fatal("failed to schedule summary snapshot", zap.Error(err))
		}
		snapshot.Start()
		defer snapshot.Stop()
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, summaryService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
