package serializers

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

type ListingInput struct {
	Title         *string         `json:"title" validate:"omitempty,max=150"`
	Description   *string         `json:"description"`
	Location      *string         `json:"location" validate:"omitempty,max=150"`
	PricePerNight json.RawMessage `json:"price_per_night"`
	MaxGuests     *int            `json:"max_guests"`
	IsAvailable   *bool           `json:"is_available"`

	price decimal.Decimal
}

func (in *ListingInput) Validate(mode Mode) error {
	errs := validate.Struct(in)
	requireAll(mode, &errs, map[string]bool{
		"title":           in.Title != nil,
		"description":     in.Description != nil,
		"location":        in.Location != nil,
		"price_per_night": in.PricePerNight != nil,
		"max_guests":      in.MaxGuests != nil,
	})
	price, ok := parseMoney(&errs, "price_per_night", in.PricePerNight)
	if ok && price.IsNegative() {
		errs.Set("price_per_night", models.MsgNegativePrice)
	}
	in.price = price
	if in.MaxGuests != nil && *in.MaxGuests < 1 {
		errs.Set("max_guests", models.MsgNoGuests)
	}
	return errs.Err()
}

func (in *ListingInput) Apply(l *models.Listing) {
	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Description != nil {
		l.Description = *in.Description
	}
	if in.Location != nil {
		l.Location = *in.Location
	}
	if in.PricePerNight != nil {
		l.PricePerNight = in.price
	}
	if in.MaxGuests != nil {
		l.MaxGuests = *in.MaxGuests
	}
	if in.IsAvailable != nil {
		l.IsAvailable = *in.IsAvailable
	}
}

type ListingOutput struct {
	ListingID     uuid.UUID `json:"listing_id"`
	Host          uuid.UUID `json:"host"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight string    `json:"price_per_night"`
	MaxGuests     int       `json:"max_guests"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func Listing(l models.Listing) ListingOutput {
	return ListingOutput{
		ListingID:     l.ID,
		Host:          l.HostID,
		Title:         l.Title,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: money(l.PricePerNight),
		MaxGuests:     l.MaxGuests,
		IsAvailable:   l.IsAvailable,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func Listings(ls []models.Listing) []ListingOutput {
	out := make([]ListingOutput, 0, len(ls))
	for _, l := range ls {
		out = append(out, Listing(l))
	}
	return out
}
