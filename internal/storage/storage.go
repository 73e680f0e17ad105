// Package storage picks the repository backend named in the configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baharkarakas/stays-backend/internal/config"
	"github.com/baharkarakas/stays-backend/internal/db"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/repository/memory"
	"github.com/baharkarakas/stays-backend/internal/repository/postgres"
)

// Open returns the repositories for cfg.Storage and a func releasing them.
// With postgres, migrations run first when cfg.Migrate is set.
func Open(ctx context.Context, cfg config.Config) (repo.Set, func(), error) {
	switch cfg.Storage {
	case "memory":
		slog.Warn("using in-memory storage; data is lost on exit")
		return memory.NewRepositories(memory.NewStore()), func() {}, nil
	case "postgres", "":
	default:
		return repo.Set{}, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return repo.Set{}, nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return repo.Set{}, nil, fmt.Errorf("migrations: %w", err)
		}
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
