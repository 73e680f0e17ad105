// Package seed loads a sample host and a few listings for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/stays-backend/internal/auth"
	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

var sampleListings = []models.Listing{
	{
		Title:         "Cozy Cottage",
		Description:   "A small cottage close to the beach.",
		Location:      "Cape Town",
		PricePerNight: decimal.RequireFromString("500.00"),
		MaxGuests:     4,
		IsAvailable:   true,
	},
	{
		Title:         "Modern Apartment",
		Description:   "City apartment with a sea view.",
		Location:      "Durban",
		PricePerNight: decimal.RequireFromString("750.00"),
		MaxGuests:     2,
		IsAvailable:   true,
	},
	{
		Title:         "Luxury Villa",
		Description:   "Spacious villa with a private pool.",
		Location:      "Johannesburg",
		PricePerNight: decimal.RequireFromString("1500.00"),
		MaxGuests:     6,
		IsAvailable:   true,
	},
}

// Result reports what a run created.
type Result struct {
	Host            models.User
	HostCreated     bool
	ListingsCreated int
	ListingsExisted int
}

// Run gets or creates the sample host and its listings. Listings are matched
// by title, so running it again changes nothing.
func Run(ctx context.Context, rs repo.Set, email, password string) (Result, error) {
	var res Result
	host, created, err := hostFor(ctx, rs.Users, email, password)
	if err != nil {
		return res, err
	}
	res.Host, res.HostCreated = host, created

	for _, l := range sampleListings {
		_, err := rs.Listings.GetByTitle(ctx, l.Title)
		if err == nil {
			slog.Info("listing already exists", "title", l.Title)
			res.ListingsExisted++
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return res, fmt.Errorf("lookup listing %q: %w", l.Title, err)
		}
		l.HostID = host.ID
		if err := l.Validate(); err != nil {
			return res, fmt.Errorf("listing %q: %w", l.Title, err)
		}
		if _, err := rs.Listings.Create(ctx, l); err != nil {
			return res, fmt.Errorf("create listing %q: %w", l.Title, err)
		}
		slog.Info("created listing", "title", l.Title, "location", l.Location)
		res.ListingsCreated++
	}
	return res, nil
}

func hostFor(ctx context.Context, users repo.Users, email, password string) (models.User, bool, error) {
	u, err := users.GetByEmail(ctx, models.NormalizeEmail(email))
	if err == nil {
		slog.Info("host already exists", "email", u.Email)
		return u, false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return models.User{}, false, fmt.Errorf("lookup host: %w", err)
	}

	u = models.User{
		Email:     models.NormalizeEmail(email),
		FirstName: "Sample",
		LastName:  "Host",
		Role:      models.RoleHost,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, false, fmt.Errorf("host: %w", err)
	}
	if u.PasswordHash, err = auth.HashPassword(password); err != nil {
		return models.User{}, false, fmt.Errorf("hash password: %w", err)
	}
	if u, err = users.Create(ctx, u); err != nil {
		return models.User{}, false, fmt.Errorf("create host: %w", err)
	}
	slog.Info("created host", "email", u.Email)
	return u, true, nil
}
