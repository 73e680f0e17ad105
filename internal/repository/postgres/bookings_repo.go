package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type bookingsRepo struct{ pool *pgxpool.Pool }

const bookingCols = `id, guest_id, listing_id, check_in_date, check_out_date, num_guests, total_price, booking_status, created_at`

func scanBooking(row pgx.Row) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(&b.ID, &b.GuestID, &b.ListingID, &b.CheckInDate, &b.CheckOutDate,
		&b.NumGuests, &b.TotalPrice, &b.Status, &b.CreatedAt)
	return b, mapErr(err)
}

func (r *bookingsRepo) Create(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	return scanBooking(r.pool.QueryRow(ctx,
		`INSERT INTO bookings(id, guest_id, listing_id, check_in_date, check_out_date, num_guests, total_price, booking_status)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+bookingCols,
		b.ID, b.GuestID, b.ListingID, b.CheckInDate, b.CheckOutDate, b.NumGuests, b.TotalPrice, b.Status,
	))
}

func (r *bookingsRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id=$1`, id))
}

func (r *bookingsRepo) ListByGuest(ctx context.Context, guestID uuid.UUID, p repo.Page) ([]models.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+bookingCols+`
		   FROM bookings
		  WHERE guest_id=$1
		  ORDER BY created_at DESC
		  LIMIT $2 OFFSET $3`,
		guestID, limitOf(p), p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *bookingsRepo) Update(ctx context.Context, b models.Booking) (models.Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx,
		`UPDATE bookings
		    SET listing_id=$2, check_in_date=$3, check_out_date=$4, num_guests=$5, total_price=$6, booking_status=$7
		  WHERE id=$1
		  RETURNING `+bookingCols,
		b.ID, b.ListingID, b.CheckInDate, b.CheckOutDate, b.NumGuests, b.TotalPrice, b.Status,
	))
}

func (r *bookingsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id))
}
