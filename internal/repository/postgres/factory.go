package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Set {
	return repo.Set{
		Users:     &usersRepo{pool},
		Listings:  &listingsRepo{pool},
		Bookings:  &bookingsRepo{pool},
		Reviews:   &reviewsRepo{pool},
		Tokens:    &tokensRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}

// mapErr translates driver errors into the repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repo.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return errors.Join(repo.ErrConflict, err)
		case "23503": // foreign_key_violation
			return errors.Join(repo.ErrNotFound, err)
		}
	}
	return err
}

func execOne(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func limitOf(p repo.Page) int {
	if p.Limit <= 0 {
		return 50
	}
	return p.Limit
}
