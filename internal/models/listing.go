package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/validate"
)

const (
	MsgNegativePrice = "Price must be zero or greater."
	MsgNoGuests      = "Listing must allow at least 1 guest."
)

type Listing struct {
	ID            uuid.UUID
	HostID        uuid.UUID
	Title         string
	Description   string
	Location      string
	PricePerNight decimal.Decimal
	MaxGuests     int
	IsAvailable   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (l *Listing) Validate() error {
	var errs validate.Errs
	errs.Add(validate.Required("title", l.Title))
	errs.Add(validate.Required("location", l.Location))
	if l.PricePerNight.IsNegative() {
		errs.Set("price_per_night", MsgNegativePrice)
	}
	if l.MaxGuests < 1 {
		errs.Set("max_guests", MsgNoGuests)
	}
	return errs.Err()
}
