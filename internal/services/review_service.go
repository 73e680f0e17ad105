package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type ReviewPatch interface {
	Apply(r *models.Review)
	// ListingID reports the listing the client named, if any.
	ListingID() (uuid.UUID, bool)
	// CheckBooking validates the merged review against its booking.
	CheckBooking(r models.Review, b models.Booking) error
}

// ReviewService manages the reviews written by a guest.
type ReviewService struct {
	r        repo.Reviews
	bookings repo.Bookings
	audit    auditor
}

func NewReviewService(r repo.Reviews, bookings repo.Bookings, a auditor) *ReviewService {
	return &ReviewService{r: r, bookings: bookings, audit: a}
}

func (s *ReviewService) Create(ctx context.Context, reviewer models.User, p ReviewPatch) (models.Review, error) {
	rv := models.Review{ReviewerID: reviewer.ID}
	p.Apply(&rv)
	if err := s.prepare(ctx, &rv, p); err != nil {
		return models.Review{}, err
	}
	if err := s.bookingFree(ctx, rv); err != nil {
		return models.Review{}, err
	}
	rv, err := s.r.Create(ctx, rv)
	if errors.Is(err, repo.ErrConflict) {
		return models.Review{}, invalid("review", duplicate("booking", "review"))
	}
	if err != nil {
		return models.Review{}, fmt.Errorf("create review: %w", err)
	}
	s.audit.record(ctx, "review", rv.ID, reviewer, models.AuditCreated, map[string]any{"booking": rv.BookingID, "rating": rv.Rating})
	return rv, nil
}

func (s *ReviewService) Get(ctx context.Context, reviewer models.User, id uuid.UUID) (models.Review, error) {
	rv, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.Review{}, err
	}
	if rv.ReviewerID != reviewer.ID {
		return models.Review{}, repo.ErrNotFound
	}
	return rv, nil
}

func (s *ReviewService) List(ctx context.Context, reviewer models.User, p repo.Page) ([]models.Review, error) {
	return s.r.ListByReviewer(ctx, reviewer.ID, p)
}

func (s *ReviewService) Update(ctx context.Context, reviewer models.User, id uuid.UUID, p ReviewPatch) (models.Review, error) {
	rv, err := s.Get(ctx, reviewer, id)
	if err != nil {
		return models.Review{}, err
	}
	p.Apply(&rv)
	if err := s.prepare(ctx, &rv, p); err != nil {
		return models.Review{}, err
	}
	if err := s.bookingFree(ctx, rv); err != nil {
		return models.Review{}, err
	}
	rv, err = s.r.Update(ctx, rv)
	if errors.Is(err, repo.ErrConflict) {
		return models.Review{}, invalid("review", duplicate("booking", "review"))
	}
	if err != nil {
		return models.Review{}, fmt.Errorf("update review: %w", err)
	}
	s.audit.record(ctx, "review", rv.ID, reviewer, models.AuditUpdated, map[string]any{"rating": rv.Rating})
	return rv, nil
}

func (s *ReviewService) Delete(ctx context.Context, reviewer models.User, id uuid.UUID) error {
	if _, err := s.Get(ctx, reviewer, id); err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, "review", id, reviewer, models.AuditDeleted, nil)
	return nil
}

// prepare loads the booking and checks the review against it. When the client
// did not name a listing the review follows the booking's.
func (s *ReviewService) prepare(ctx context.Context, rv *models.Review, p ReviewPatch) error {
	b, err := s.bookings.GetByID(ctx, rv.BookingID)
	if errors.Is(err, repo.ErrNotFound) {
		return invalid("review", missingRef("booking", rv.BookingID))
	}
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if _, named := p.ListingID(); !named {
		rv.ListingID = b.ListingID
	}
	if err := p.CheckBooking(*rv, b); err != nil {
		return invalid("review", err)
	}
	if err := rv.Validate(b); err != nil {
		return invalid("review", err)
	}
	return nil
}

// bookingFree rejects a review for a booking that another review already
// covers. The unique constraint still catches concurrent inserts.
func (s *ReviewService) bookingFree(ctx context.Context, rv models.Review) error {
	other, err := s.r.GetByBooking(ctx, rv.BookingID)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("lookup review: %w", err)
	case other.ID != rv.ID:
		return invalid("review", duplicate("booking", "review"))
	}
	return nil
}
