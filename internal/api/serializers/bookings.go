package serializers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

// BookingInput takes ids, dates and amounts undecoded so a malformed value is
// reported against its field rather than failing the whole decode.
type BookingInput struct {
	Listing      *string         `json:"listing"`
	CheckInDate  *string         `json:"check_in_date"`
	CheckOutDate *string         `json:"check_out_date"`
	NumGuests    *int            `json:"num_guests"`
	TotalPrice   json.RawMessage `json:"total_price"`

	listingID uuid.UUID
	checkIn   models.Date
	checkOut  models.Date
	total     decimal.Decimal
}

// Validate checks syntax and parses ids, dates and amounts. Capacity needs the
// listing and is checked by CheckListing.
func (in *BookingInput) Validate(mode Mode) error {
	var errs validate.Errs
	requireAll(mode, &errs, map[string]bool{
		"listing":        in.Listing != nil,
		"check_in_date":  in.CheckInDate != nil,
		"check_out_date": in.CheckOutDate != nil,
		"num_guests":     in.NumGuests != nil,
	})
	in.listingID, _ = parseUUID(&errs, "listing", in.Listing)
	ci, okIn := parseDate(&errs, "check_in_date", in.CheckInDate)
	co, okOut := parseDate(&errs, "check_out_date", in.CheckOutDate)
	in.checkIn, in.checkOut = ci, co
	if okIn && okOut && !ci.Before(co) {
		errs.Set("check_out_date", models.MsgCheckOutOrder)
	}
	if in.NumGuests != nil && *in.NumGuests < 1 {
		errs.Set("num_guests", models.MsgTooFewGuests)
	}
	total, ok := parseMoney(&errs, "total_price", in.TotalPrice)
	if ok && total.IsNegative() {
		errs.Set("total_price", models.MsgNegativeAmount)
	}
	in.total = total
	return errs.Err()
}

// CheckListing repeats the stay checks once the booking is merged and its
// listing is known.
func (in *BookingInput) CheckListing(b models.Booking, l models.Listing) error {
	var errs validate.Errs
	if !b.CheckInDate.Before(b.CheckOutDate) {
		errs.Set("check_out_date", models.MsgCheckOutOrder)
	}
	if b.NumGuests > l.MaxGuests {
		errs.Set("num_guests", models.MsgOverCapacity)
	}
	return errs.Err()
}

// ListingID is the parsed listing reference, if one was supplied.
func (in *BookingInput) ListingID() (uuid.UUID, bool) {
	return in.listingID, in.Listing != nil && in.listingID != uuid.Nil
}

// Reprices reports whether the stay changed without an explicit total.
func (in *BookingInput) Reprices() bool {
	return in.TotalPrice == nil && (in.Listing != nil || in.CheckInDate != nil || in.CheckOutDate != nil)
}

// Apply copies supplied fields onto b. Validate must have succeeded.
func (in *BookingInput) Apply(b *models.Booking) {
	if in.Listing != nil {
		b.ListingID = in.listingID
	}
	if in.CheckInDate != nil {
		b.CheckInDate = in.checkIn
	}
	if in.CheckOutDate != nil {
		b.CheckOutDate = in.checkOut
	}
	if in.NumGuests != nil {
		b.NumGuests = *in.NumGuests
	}
	if in.TotalPrice != nil {
		b.TotalPrice = in.total
	}
}

type BookingOutput struct {
	BookingID     uuid.UUID            `json:"booking_id"`
	Guest         uuid.UUID            `json:"guest"`
	Listing       uuid.UUID            `json:"listing"`
	CheckInDate   models.Date          `json:"check_in_date"`
	CheckOutDate  models.Date          `json:"check_out_date"`
	NumGuests     int                  `json:"num_guests"`
	TotalPrice    string               `json:"total_price"`
	BookingStatus models.BookingStatus `json:"booking_status"`
	CreatedAt     time.Time            `json:"created_at"`
}

func Booking(b models.Booking) BookingOutput {
	return BookingOutput{
		BookingID:     b.ID,
		Guest:         b.GuestID,
		Listing:       b.ListingID,
		CheckInDate:   b.CheckInDate,
		CheckOutDate:  b.CheckOutDate,
		NumGuests:     b.NumGuests,
		TotalPrice:    money(b.TotalPrice),
		BookingStatus: b.Status,
		CreatedAt:     b.CreatedAt,
	}
}

func Bookings(bs []models.Booking) []BookingOutput {
	out := make([]BookingOutput, 0, len(bs))
	for _, b := range bs {
		out = append(out, Booking(b))
	}
	return out
}
