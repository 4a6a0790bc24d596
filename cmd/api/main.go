// Package main is the entry point for the hitchlog API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/hitchlog/backend/internal/cache"
	"github.com/hitchlog/backend/internal/config"
	"github.com/hitchlog/backend/internal/handler"
	"github.com/hitchlog/backend/internal/middleware"
	"github.com/hitchlog/backend/internal/repo"
	"github.com/hitchlog/backend/internal/service"
	"github.com/hitchlog/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Postgres often comes up after the API in compose setups, so retry the
	// first ping before giving up.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	ping := func() error { return pool.Ping(ctx) }
	notify := func(err error, wait time.Duration) {
		slog.Warn("database not ready, retrying", "error", err, "retry_in", wait)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(bo, ctx), notify); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	applied := 0
	if cfg.MigrateOnStart {
		applied = migrate(ctx, pool)
	}

	// --- Cache ------------------------------------------------------------
	// Pass a nil interface, not a nil *cache.ReportCache, when caching is off.
	var reportCache service.ReportCache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		rc := cache.NewReportCache(client, cfg.ReportTTL)

		// A schema change can change what the report counts.
		if applied > 0 {
			if err := rc.Invalidate(ctx); err != nil {
				slog.Warn("failed to invalidate cached country report", "error", err)
			}
		}
		reportCache = rc
		slog.Info("country report cache enabled", "ttl", cfg.ReportTTL)
	}

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	hitchhikeRepo := repo.NewHitchhikeRepo(pool)

	tripSvc := service.NewTripService(tripRepo, logger)
	reportSvc := service.NewReportService(tripRepo, reportCache, cfg.CountryPolicy, cfg.ReportTTL, logger)
	hitchhikeSvc := service.NewHitchhikeService(hitchhikeRepo)

	go reportSvc.Run(ctx, cfg.ReportRefreshInterval)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Metrics →
	// CORS → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(chimiddleware.Recoverer)

	srv := handler.NewServer(tripSvc, reportSvc, hitchhikeSvc, logger)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// The write timeout leaves room for an uncached country report build.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "country_policy", string(cfg.CountryPolicy))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for a signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies pending migrations through a database/sql view of the
// pool and returns how many ran. Failure is fatal.
func migrate(ctx context.Context, pool *pgxpool.Pool) int {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	applied, err := migrations.Up(ctx, db)
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)
	return applied
}
