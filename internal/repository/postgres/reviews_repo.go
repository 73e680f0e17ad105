package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type reviewsRepo struct{ pool *pgxpool.Pool }

const reviewCols = `id, booking_id, reviewer_id, listing_id, rating, comment, created_at`

func scanReview(row pgx.Row) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.ListingID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	return rv, mapErr(err)
}

func (r *reviewsRepo) Create(ctx context.Context, rv models.Review) (models.Review, error) {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	return scanReview(r.pool.QueryRow(ctx,
		`INSERT INTO reviews(id, booking_id, reviewer_id, listing_id, rating, comment)
		 VALUES($1,$2,$3,$4,$5,$6)
		 RETURNING `+reviewCols,
		rv.ID, rv.BookingID, rv.ReviewerID, rv.ListingID, rv.Rating, rv.Comment,
	))
}

func (r *reviewsRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewCols+` FROM reviews WHERE id=$1`, id))
}

func (r *reviewsRepo) GetByBooking(ctx context.Context, bookingID uuid.UUID) (models.Review, error) {
	return scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewCols+` FROM reviews WHERE booking_id=$1`, bookingID))
}

func (r *reviewsRepo) ListByReviewer(ctx context.Context, reviewerID uuid.UUID, p repo.Page) ([]models.Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reviewCols+`
		   FROM reviews
		  WHERE reviewer_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		reviewerID, limitOf(p), p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewsRepo) Update(ctx context.Context, rv models.Review) (models.Review, error) {
	return scanReview(r.pool.QueryRow(ctx,
		`UPDATE reviews
		    SET booking_id=$2, listing_id=$3, rating=$4, comment=$5
		  WHERE id=$1
		  RETURNING `+reviewCols,
		rv.ID, rv.BookingID, rv.ListingID, rv.Rating, rv.Comment,
	))
}

func (r *reviewsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id))
}
