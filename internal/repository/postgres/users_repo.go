package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, email, first_name, last_name, phone_number, role, password_hash, created_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, mapErr(err)
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO users(id, email, first_name, last_name, phone_number, role, password_hash)
		 VALUES($1,$2,$3,$4,$5,$6,$7)
		 RETURNING `+userCols,
		u.ID, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.Role, u.PasswordHash,
	))
}

func (r *usersRepo) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email)=lower($1)`, email))
}

func (r *usersRepo) List(ctx context.Context, p repo.Page) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limitOf(p), p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users
		    SET email=$2, first_name=$3, last_name=$4, phone_number=$5, role=$6, password_hash=$7
		  WHERE id=$1
		  RETURNING `+userCols,
		u.ID, u.Email, u.FirstName, u.LastName, u.PhoneNumber, u.Role, u.PasswordHash,
	))
}

func (r *usersRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id))
}
