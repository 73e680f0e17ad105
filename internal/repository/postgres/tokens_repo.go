package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stays-backend/internal/models"
)

type tokensRepo struct{ pool *pgxpool.Pool }

func (r *tokensRepo) GetOrCreate(ctx context.Context, userID uuid.UUID, key string) (models.AuthToken, bool, error) {
	var t models.AuthToken
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO auth_tokens(key, user_id) VALUES($1,$2)
		 ON CONFLICT (user_id) DO NOTHING`,
		key, userID,
	)
	if err != nil {
		return t, false, mapErr(err)
	}
	err = r.pool.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM auth_tokens WHERE user_id=$1`, userID,
	).Scan(&t.Key, &t.UserID, &t.CreatedAt)
	return t, tag.RowsAffected() == 1, mapErr(err)
}

func (r *tokensRepo) GetByKey(ctx context.Context, key string) (models.AuthToken, error) {
	var t models.AuthToken
	err := r.pool.QueryRow(ctx,
		`SELECT key, user_id, created_at FROM auth_tokens WHERE key=$1`, key,
	).Scan(&t.Key, &t.UserID, &t.CreatedAt)
	return t, mapErr(err)
}
