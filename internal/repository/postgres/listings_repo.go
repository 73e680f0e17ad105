package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type listingsRepo struct{ pool *pgxpool.Pool }

const listingCols = `id, host_id, title, description, location, price_per_night, max_guests, is_available, created_at, updated_at`

func scanListing(row pgx.Row) (models.Listing, error) {
	var l models.Listing
	err := row.Scan(&l.ID, &l.HostID, &l.Title, &l.Description, &l.Location,
		&l.PricePerNight, &l.MaxGuests, &l.IsAvailable, &l.CreatedAt, &l.UpdatedAt)
	return l, mapErr(err)
}

func (r *listingsRepo) Create(ctx context.Context, l models.Listing) (models.Listing, error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return scanListing(r.pool.QueryRow(ctx,
		`INSERT INTO listings(id, host_id, title, description, location, price_per_night, max_guests, is_available)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+listingCols,
		l.ID, l.HostID, l.Title, l.Description, l.Location, l.PricePerNight, l.MaxGuests, l.IsAvailable,
	))
}

func (r *listingsRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Listing, error) {
	return scanListing(r.pool.QueryRow(ctx, `SELECT `+listingCols+` FROM listings WHERE id=$1`, id))
}

// GetByTitle returns the oldest listing with the given title.
func (r *listingsRepo) GetByTitle(ctx context.Context, title string) (models.Listing, error) {
	return scanListing(r.pool.QueryRow(ctx,
		`SELECT `+listingCols+` FROM listings WHERE title=$1 ORDER BY created_at LIMIT 1`, title))
}

func (r *listingsRepo) ListByHost(ctx context.Context, hostID uuid.UUID, p repo.Page) ([]models.Listing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+listingCols+`
		   FROM listings
		  WHERE host_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		hostID, limitOf(p), p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *listingsRepo) Update(ctx context.Context, l models.Listing) (models.Listing, error) {
	return scanListing(r.pool.QueryRow(ctx,
		`UPDATE listings
		    SET title=$2, description=$3, location=$4, price_per_night=$5, max_guests=$6, is_available=$7, updated_at=now()
		  WHERE id=$1
		  RETURNING `+listingCols,
		l.ID, l.Title, l.Description, l.Location, l.PricePerNight, l.MaxGuests, l.IsAvailable,
	))
}

func (r *listingsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM listings WHERE id=$1`, id))
}
