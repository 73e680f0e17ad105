package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

type BookingPatch interface {
	Apply(b *models.Booking)
	// Reprices reports whether total_price should be recomputed from the stay.
	Reprices() bool
	// CheckListing validates the merged booking against its listing.
	CheckListing(b models.Booking, l models.Listing) error
}

// BookingService manages a guest's own bookings.
type BookingService struct {
	r        repo.Bookings
	listings repo.Listings
	audit    auditor
}

func NewBookingService(r repo.Bookings, listings repo.Listings, a auditor) *BookingService {
	return &BookingService{r: r, listings: listings, audit: a}
}

func (s *BookingService) Create(ctx context.Context, guest models.User, p BookingPatch) (models.Booking, error) {
	b := models.Booking{GuestID: guest.ID, Status: models.BookingPending}
	p.Apply(&b)
	l, err := s.prepare(ctx, &b, p)
	if err != nil {
		return models.Booking{}, err
	}
	b, err = s.r.Create(ctx, b)
	if err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	s.audit.record(ctx, "booking", b.ID, guest, models.AuditCreated, map[string]any{
		"listing": l.ID, "check_in_date": b.CheckInDate.String(), "check_out_date": b.CheckOutDate.String(),
	})
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, guest models.User, id uuid.UUID) (models.Booking, error) {
	b, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.GuestID != guest.ID {
		return models.Booking{}, repo.ErrNotFound
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, guest models.User, p repo.Page) ([]models.Booking, error) {
	return s.r.ListByGuest(ctx, guest.ID, p)
}

func (s *BookingService) Update(ctx context.Context, guest models.User, id uuid.UUID, p BookingPatch) (models.Booking, error) {
	b, err := s.Get(ctx, guest, id)
	if err != nil {
		return models.Booking{}, err
	}
	p.Apply(&b)
	if _, err := s.prepare(ctx, &b, p); err != nil {
		return models.Booking{}, err
	}
	b, err = s.r.Update(ctx, b)
	if err != nil {
		return models.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	s.audit.record(ctx, "booking", b.ID, guest, models.AuditUpdated, nil)
	return b, nil
}

// Cancel marks the booking cancelled. Cancelling twice is a validation error.
func (s *BookingService) Cancel(ctx context.Context, guest models.User, id uuid.UUID) (models.Booking, error) {
	b, err := s.Get(ctx, guest, id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingCancelled {
		return models.Booking{}, invalid("booking", validate.Errs{{Field: "booking_status", Msg: "Booking is already cancelled."}})
	}
	prev := b.Status
	b.Status = models.BookingCancelled
	b, err = s.r.Update(ctx, b)
	if err != nil {
		return models.Booking{}, fmt.Errorf("cancel booking: %w", err)
	}
	s.audit.record(ctx, "booking", b.ID, guest, models.AuditCancelled, map[string]any{"previous_status": prev})
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, guest models.User, id uuid.UUID) error {
	if _, err := s.Get(ctx, guest, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, "booking", id, guest, models.AuditDeleted, nil)
	return nil
}

// prepare loads the referenced listing, prices the stay when asked to and runs
// the cross-field checks.
func (s *BookingService) prepare(ctx context.Context, b *models.Booking, p BookingPatch) (models.Listing, error) {
	l, err := s.listings.GetByID(ctx, b.ListingID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Listing{}, invalid("booking", missingRef("listing", b.ListingID))
	}
	if err != nil {
		return models.Listing{}, fmt.Errorf("load listing: %w", err)
	}
	if err := p.CheckListing(*b, l); err != nil {
		return models.Listing{}, invalid("booking", err)
	}
	if p.Reprices() {
		b.TotalPrice = l.PricePerNight.Mul(decimal.NewFromInt(int64(b.Nights())))
	}
	if err := b.Validate(l); err != nil {
		return models.Listing{}, invalid("booking", err)
	}
	return l, nil
}
