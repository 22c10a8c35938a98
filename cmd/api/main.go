package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ledgerlab/pointd/internal/api"
	"github.com/ledgerlab/pointd/internal/auth"
	"github.com/ledgerlab/pointd/internal/config"
	"github.com/ledgerlab/pointd/internal/db"
	"github.com/ledgerlab/pointd/internal/logger"
	"github.com/ledgerlab/pointd/internal/metrics"
	"github.com/ledgerlab/pointd/internal/middleware"
	repo "github.com/ledgerlab/pointd/internal/repository"
	"github.com/ledgerlab/pointd/internal/repository/memory"
	"github.com/ledgerlab/pointd/internal/repository/postgres"
	"github.com/ledgerlab/pointd/internal/services"
	"github.com/ledgerlab/pointd/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var repos repo.Repositories
	switch cfg.Storage {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("db connect", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if os.Getenv("APP_MIGRATE") == "true" {
			if err := db.RunMigrations(ctx, pool); err != nil {
				log.Error("migrations", "err", err)
				os.Exit(1)
			}
		}
		repos = postgres.NewRepositories(pool)
	default:
		repos = memory.NewRepositories()
	}

	metrics.Init()

	wp := worker.NewPool(4)
	defer wp.Stop()

	svc := services.NewPointService(repos, wp, cfg.MaxChargeAmount)

	var am *middleware.AuthMiddleware
	if cfg.AuthSecret != "" {
		tm := auth.NewTokenManager(cfg.AuthSecret, cfg.AuthIssuer, 15*time.Minute)
		am = middleware.NewAuthMiddleware(tm)
	}

	r := api.NewRouter(cfg, svc, am)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "storage", cfg.Storage, "auth", cfg.AuthSecret != "")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
