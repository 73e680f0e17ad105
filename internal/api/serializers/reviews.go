package serializers

import (
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

type ReviewInput struct {
	Booking *string `json:"booking"`
	Listing *string `json:"listing"`
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`

	bookingID uuid.UUID
	listingID uuid.UUID
}

// Validate checks syntax. listing may be omitted and then follows the booking.
func (in *ReviewInput) Validate(mode Mode) error {
	errs := validate.Struct(in)
	requireAll(mode, &errs, map[string]bool{
		"booking": in.Booking != nil,
		"rating":  in.Rating != nil,
	})
	in.bookingID, _ = parseUUID(&errs, "booking", in.Booking)
	in.listingID, _ = parseUUID(&errs, "listing", in.Listing)
	return errs.Err()
}

func (in *ReviewInput) BookingID() (uuid.UUID, bool) {
	return in.bookingID, in.Booking != nil && in.bookingID != uuid.Nil
}

func (in *ReviewInput) ListingID() (uuid.UUID, bool) {
	return in.listingID, in.Listing != nil && in.listingID != uuid.Nil
}

// CheckBooking repeats the consistency checks once the review is merged and
// its booking is known.
func (in *ReviewInput) CheckBooking(r models.Review, b models.Booking) error {
	var errs validate.Errs
	if r.ReviewerID != b.GuestID {
		errs.Set("booking", models.MsgReviewerNotGuest)
	}
	if r.ListingID != b.ListingID {
		errs.Set("listing", models.MsgListingMismatch)
	}
	return errs.Err()
}

func (in *ReviewInput) Apply(r *models.Review) {
	if in.Booking != nil {
		r.BookingID = in.bookingID
	}
	if in.Listing != nil {
		r.ListingID = in.listingID
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		c := *in.Comment
		r.Comment = &c
	}
}

type ReviewOutput struct {
	ReviewID  uuid.UUID `json:"review_id"`
	Booking   uuid.UUID `json:"booking"`
	Listing   uuid.UUID `json:"listing"`
	Reviewer  uuid.UUID `json:"reviewer"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func Review(r models.Review) ReviewOutput {
	return ReviewOutput{
		ReviewID:  r.ID,
		Booking:   r.BookingID,
		Listing:   r.ListingID,
		Reviewer:  r.ReviewerID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func Reviews(rs []models.Review) []ReviewOutput {
	out := make([]ReviewOutput, 0, len(rs))
	for _, r := range rs {
		out = append(out, Review(r))
	}
	return out
}
