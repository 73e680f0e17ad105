package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("conflict")
)

type Page struct {
	Limit  int
	Offset int
}

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context, p Page) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Listings interface {
	Create(ctx context.Context, l models.Listing) (models.Listing, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Listing, error)
	GetByTitle(ctx context.Context, title string) (models.Listing, error)
	ListByHost(ctx context.Context, hostID uuid.UUID, p Page) ([]models.Listing, error)
	Update(ctx context.Context, l models.Listing) (models.Listing, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Bookings interface {
	Create(ctx context.Context, b models.Booking) (models.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Booking, error)
	ListByGuest(ctx context.Context, guestID uuid.UUID, p Page) ([]models.Booking, error)
	Update(ctx context.Context, b models.Booking) (models.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Reviews interface {
	Create(ctx context.Context, r models.Review) (models.Review, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Review, error)
	GetByBooking(ctx context.Context, bookingID uuid.UUID) (models.Review, error)
	ListByReviewer(ctx context.Context, reviewerID uuid.UUID, p Page) ([]models.Review, error)
	Update(ctx context.Context, r models.Review) (models.Review, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Tokens interface {
	// GetOrCreate returns the user's token, inserting key if the user has none.
	GetOrCreate(ctx context.Context, userID uuid.UUID, key string) (models.AuthToken, bool, error)
	GetByKey(ctx context.Context, key string) (models.AuthToken, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Set bundles one implementation of every repository.
type Set struct {
	Users     Users
	Listings  Listings
	Bookings  Bookings
	Reviews   Reviews
	Tokens    Tokens
	AuditLogs AuditLogs
}
