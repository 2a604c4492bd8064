package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/storepilot/storepilot/internal/app"
	"github.com/storepilot/storepilot/internal/auth"
	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/observability"
	"github.com/storepilot/storepilot/internal/orders"
	"github.com/storepilot/storepilot/internal/platform/db"
	"github.com/storepilot/storepilot/internal/registration"
	"github.com/storepilot/storepilot/internal/shared"
	"github.com/storepilot/storepilot/internal/stats"
	"github.com/storepilot/storepilot/internal/stores"
	"github.com/storepilot/storepilot/internal/users"
	"github.com/storepilot/storepilot/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "storepilot_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	profileRepo := identity.NewProfileRepository(dbpool)
	resolver := identity.NewResolver(profileRepo)
	provider := identity.NewProvider(dbpool)
	authz := identity.Middleware{Resolver: resolver, Logger: logger}

	authService := auth.NewService(provider, resolver)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	registrationService := registration.NewService(provider, cfg.RegistrationCode)
	registrationHandler := registration.NewHandler(logger, registrationService)

	storesRepo := stores.NewRepository(dbpool)
	storesService := stores.NewService(storesRepo, logger)
	assignmentService := stores.NewAssignmentService(storesRepo, logger)
	storesHandler := stores.NewHandler(logger, storesService, assignmentService)

	ordersRepo := orders.NewRepository(dbpool)
	ordersService := orders.NewService(ordersRepo)
	ordersHandler := orders.NewHandler(logger, ordersService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService)

	statsRepo := stats.NewRepository(dbpool)
	statsService := stats.NewService(statsRepo)
	statsHandler := stats.NewHandler(logger, statsService)

	metrics := observability.NewMetrics()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("asynq client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(jobClient, inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		Metrics:             metrics,
		Authz:               authz,
		AuthHandler:         authHandler,
		RegistrationHandler: registrationHandler,
		StoresHandler:       storesHandler,
		OrdersHandler:       ordersHandler,
		UsersHandler:        usersHandler,
		StatsHandler:        statsHandler,
		JobsHandler:         jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
