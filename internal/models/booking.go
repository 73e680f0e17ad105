package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/validate"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

const (
	MsgCheckOutOrder  = "Check-out must be after check-in."
	MsgOverCapacity   = "Number of guests exceeds listing capacity."
	MsgTooFewGuests   = "Must book for at least 1 guest."
	MsgNegativeAmount = "Ensure this value is greater than or equal to 0."
	MsgMoneyDigits    = "Ensure that there are no more than 10 digits in total."
)

// MaxMoney is the exclusive upper bound of a numeric(10,2) column.
var MaxMoney = decimal.New(1, 8)

type Booking struct {
	ID           uuid.UUID
	GuestID      uuid.UUID
	ListingID    uuid.UUID
	CheckInDate  Date
	CheckOutDate Date
	NumGuests    int
	TotalPrice   decimal.Decimal
	Status       BookingStatus
	CreatedAt    time.Time
}

// Nights is the number of nights between check-in and check-out.
func (b Booking) Nights() int { return b.CheckInDate.DaysUntil(b.CheckOutDate) }

// Validate checks the booking against the listing it references.
func (b *Booking) Validate(l Listing) error {
	var errs validate.Errs
	if !b.CheckInDate.Before(b.CheckOutDate) {
		errs.Set("check_out_date", MsgCheckOutOrder)
	}
	if b.NumGuests > l.MaxGuests {
		errs.Set("num_guests", MsgOverCapacity)
	} else if b.NumGuests < 1 {
		errs.Set("num_guests", MsgTooFewGuests)
	}
	if b.TotalPrice.IsNegative() {
		errs.Set("total_price", MsgNegativeAmount)
	} else if b.TotalPrice.GreaterThanOrEqual(MaxMoney) {
		errs.Set("total_price", MsgMoneyDigits)
	}
	if b.ListingID != l.ID {
		errs.Set("listing", "Listing does not match.")
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return errs.Err()
}
