package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/baharkarakas/stays-backend/internal/config"
	"github.com/baharkarakas/stays-backend/internal/logger"
	"github.com/baharkarakas/stays-backend/internal/seed"
	"github.com/baharkarakas/stays-backend/internal/storage"
)

func main() {
	cfg := config.Load()
	email := flag.String("email", cfg.SeedHostEmail, "sample host email")
	password := flag.String("password", cfg.SeedHostPassword, "sample host password")
	flag.Parse()

	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx := context.Background()
	repos, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Error("storage", "err", err)
		os.Exit(1)
	}
	defer closeStore()

	res, err := seed.Run(ctx, repos, *email, *password)
	if err != nil {
		log.Error("seed", "err", err)
		closeStore()
		os.Exit(1)
	}
	log.Info("seed complete",
		"host", res.Host.Email,
		"host_created", res.HostCreated,
		"listings_created", res.ListingsCreated,
		"listings_existing", res.ListingsExisted,
	)
}
