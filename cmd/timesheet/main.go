package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/concertshift/timesheet/internal/api"
	"github.com/concertshift/timesheet/internal/api/handler"
	"github.com/concertshift/timesheet/internal/core/service"
	"github.com/concertshift/timesheet/internal/infrastructure/db/mongo"
	"github.com/concertshift/timesheet/internal/infrastructure/db/postgres"
	"github.com/concertshift/timesheet/internal/infrastructure/db/redis"
	"github.com/concertshift/timesheet/internal/infrastructure/queue"
	"github.com/concertshift/timesheet/internal/pkg/config"
	"github.com/concertshift/timesheet/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	shiftLockTTL    = 10 * time.Second
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "timesheet",
		Env:     cfg.Env,
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid report timezone")
	}

	ctx := context.Background()

	// --- Entity store ---
	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect postgres")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// --- Audit trail ---
	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongodb")
	}
	auditRepo := mongo.NewAuditRepository(mongoDB)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("ensure audit indexes failed")
	}

	// --- Clock-in lock ---
	redisClient, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, service.NewAuditService(auditRepo, log), log)
	dispatcher.Start(ctx)

	// --- Services ---
	users := postgres.NewUserRepository(pool)
	concerts := postgres.NewConcertRepository(pool)
	entries := postgres.NewTimeEntryRepository(pool)

	svc := api.Services{
		Auth: service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL),
		Shifts: service.NewShiftService(entries, concerts, redis.NewShiftLock(redisClient, shiftLockTTL, log), dispatcher, log, service.ShiftOptions{
			MaxShift: cfg.MaxShift(),
			Location: loc,
		}),
		Concerts:    service.NewConcertService(concerts, log),
		Translators: service.NewTranslatorService(users, log),
		Reports:     service.NewReportService(entries, concerts, users, loc, log),
	}

	e := api.NewRouter(api.RouterConfig{
		JWTSecret: cfg.JWTSecret,
		Location:  loc,
		Logger:    log,
		Readiness: handler.NewHealthDependenciesHandler(pool, mongoDB, redisClient),
	}, svc)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	waitForShutdown(log, e, dispatcher, func() {
		pool.Close()
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect error")
		}
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close error")
		}
	})
}

func waitForShutdown(log zerolog.Logger, e *echo.Echo, dispatcher *queue.Dispatcher, closeStores func()) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	// Requests are drained, so no more events can be published.
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("audit queue not fully drained")
	}

	closeStores()
	log.Info().Msg("server exited cleanly")
}
