// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

// Command api is the entry point for the Fashion Fiesta HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Run database migrations.
//  4. Connect to PostgreSQL (pgxpool) and Redis.
//  5. Build the token service, mail dispatcher and Google client.
//  6. Wire repositories, services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Avi4306/FashionFiesta-sub001/internal/api"
	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/cart"
	"github.com/Avi4306/FashionFiesta-sub001/internal/commerce/product"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/config"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/constants"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/mail"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/middleware"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/migration"
	pgstore "github.com/Avi4306/FashionFiesta-sub001/internal/platform/postgres"
	redisstore "github.com/Avi4306/FashionFiesta-sub001/internal/platform/redis"
	"github.com/Avi4306/FashionFiesta-sub001/internal/platform/sec"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/account"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/auth"
	"github.com/Avi4306/FashionFiesta-sub001/internal/users/designer"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	level.Set(parseLevel(cfg.LogLevel))
	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("google_enabled", cfg.GoogleEnabled()),
	)

	// Bound startup so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Security & Outbound ────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)
	must(log, err, "initialize token service")

	dispatcher := mail.NewDispatcher(mail.NewSender(cfg, log), log, constants.NotificationTimeout)

	var google auth.GoogleProvider
	if cfg.GoogleEnabled() {
		google = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	productRepository := product.NewRepository(pool)
	cartRepository := cart.NewRepository(pool)

	authService := auth.NewService(
		userRepository,
		auth.NewSignupCodeRepository(rdb),
		auth.NewOAuthStateRepository(rdb),
		tokens,
		dispatcher,
		google,
		auth.ServiceConfig{IsAdminEmail: cfg.IsAdminEmail, Logger: log},
	)
	productService := product.NewService(productRepository, userRepository, log)
	cartService := cart.NewService(cartRepository, productService, log)
	accountService := account.NewService(userRepository, cartService, log)
	designerService := designer.NewService(userRepository, dispatcher, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, middleware.NewMetrics(registry),
		api.Security{Tokens: tokens, Profiles: auth.NewProfileReader(userRepository)},
		api.Handlers{
			Liveness:  liveness,
			Readiness: readiness,
			Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			Auth:      auth.NewHandler(authService),
			Account:   account.NewHandler(accountService),
			Designer:  designer.NewHandler(designerService),
			Products:  product.NewHandler(productService),
			Cart:      cart.NewHandler(cartService),
		},
	)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	// Emails queued by the last requests still get their chance to go out.
	mailCtx, mailCancel := context.WithTimeout(context.Background(), constants.NotificationTimeout)
	defer mailCancel()
	if err := dispatcher.Wait(mailCtx); err != nil {
		log.Warn("pending mail abandoned", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

// parseLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
