package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/analytics"
	httptransport "github.com/spec-kit/interaction-analytics/internal/api/http"
	"github.com/spec-kit/interaction-analytics/internal/api/http/handlers"
	"github.com/spec-kit/interaction-analytics/internal/auth"
	"github.com/spec-kit/interaction-analytics/internal/config"
	"github.com/spec-kit/interaction-analytics/internal/events"
	"github.com/spec-kit/interaction-analytics/internal/observability"
	"github.com/spec-kit/interaction-analytics/internal/persistence"
	"github.com/spec-kit/interaction-analytics/internal/repository"
	"github.com/spec-kit/interaction-analytics/internal/service"
	"github.com/spec-kit/interaction-analytics/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	engine := analytics.NewEngine(analytics.NewCache())
	interactionRepo := repository.NewInteractionRepository(pg.PoolHandle(), logger)

	analyticsService := service.NewAnalyticsService(service.AnalyticsDependencies{
		Repo:       interactionRepo,
		Engine:     engine,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
		Scoring:    cfg.Scoring,
	})

	worker.StartRefreshWorker(ctx, analyticsService, dispatcher, redis, cfg.Refresh.Interval(), logger)

	if pg.PoolHandle() != nil {
		if err := analyticsService.Refresh(ctx); err != nil {
			logger.Warn("initial snapshot load failed", zap.Error(err))
		}
	}

	authenticator := auth.NewAuthenticator(cfg.Auth)
	authMiddleware := auth.NewAuthMiddleware(authenticator.TokenManager())

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, analyticsService, metrics),
		Auth:           handlers.NewAuthHandler(authenticator),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Admin:          handlers.NewAdminHandler(analyticsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
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
