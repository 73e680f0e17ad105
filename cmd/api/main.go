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

	"github.com/baharkarakas/stays-backend/internal/api"
	"github.com/baharkarakas/stays-backend/internal/config"
	"github.com/baharkarakas/stays-backend/internal/logger"
	"github.com/baharkarakas/stays-backend/internal/metrics"
	"github.com/baharkarakas/stays-backend/internal/services"
	"github.com/baharkarakas/stays-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("storage", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	metrics.Init()
	svc := services.New(repos)
	r := api.NewRouter(cfg, repos, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}
