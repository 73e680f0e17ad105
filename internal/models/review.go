package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/validate"
)

const (
	MsgReviewerNotGuest = "Reviewer must be the guest who made the booking."
	MsgListingMismatch  = "Listing must match the one in the booking."
)

type Review struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	ReviewerID uuid.UUID
	ListingID  uuid.UUID
	Rating     int
	Comment    *string
	CreatedAt  time.Time
}

// Validate checks the review against the booking it is attached to.
func (r *Review) Validate(b Booking) error {
	var errs validate.Errs
	if r.Rating < 1 || r.Rating > 5 {
		errs.Add(validate.MinInt("rating", int64(r.Rating), 1))
		errs.Add(validate.MaxInt("rating", int64(r.Rating), 5))
	}
	if r.BookingID != b.ID {
		errs.Set("booking", "Booking does not match.")
	}
	if r.ReviewerID != b.GuestID {
		errs.Set("booking", MsgReviewerNotGuest)
	}
	if r.ListingID != b.ListingID {
		errs.Set("listing", MsgListingMismatch)
	}
	return errs.Err()
}
