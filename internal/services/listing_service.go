package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type ListingPatch interface {
	Apply(l *models.Listing)
}

// ListingService manages a host's own listings. Listings of other hosts are
// reported as not found.
type ListingService struct {
	r     repo.Listings
	audit auditor
}

func NewListingService(r repo.Listings, a auditor) *ListingService {
	return &ListingService{r: r, audit: a}
}

func (s *ListingService) Create(ctx context.Context, host models.User, p ListingPatch) (models.Listing, error) {
	l := models.Listing{HostID: host.ID, IsAvailable: true}
	p.Apply(&l)
	if err := l.Validate(); err != nil {
		return models.Listing{}, invalid("listing", err)
	}
	l, err := s.r.Create(ctx, l)
	if err != nil {
		return models.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	s.audit.record(ctx, "listing", l.ID, host, models.AuditCreated, map[string]any{"title": l.Title})
	return l, nil
}

func (s *ListingService) Get(ctx context.Context, host models.User, id uuid.UUID) (models.Listing, error) {
	l, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.Listing{}, err
	}
	if l.HostID != host.ID {
		return models.Listing{}, repo.ErrNotFound
	}
	return l, nil
}

func (s *ListingService) List(ctx context.Context, host models.User, p repo.Page) ([]models.Listing, error) {
	return s.r.ListByHost(ctx, host.ID, p)
}

func (s *ListingService) Update(ctx context.Context, host models.User, id uuid.UUID, p ListingPatch) (models.Listing, error) {
	l, err := s.Get(ctx, host, id)
	if err != nil {
		return models.Listing{}, err
	}
	p.Apply(&l)
	if err := l.Validate(); err != nil {
		return models.Listing{}, invalid("listing", err)
	}
	l, err = s.r.Update(ctx, l)
	if err != nil {
		return models.Listing{}, fmt.Errorf("update listing: %w", err)
	}
	s.audit.record(ctx, "listing", l.ID, host, models.AuditUpdated, map[string]any{"title": l.Title})
	return l, nil
}

func (s *ListingService) Delete(ctx context.Context, host models.User, id uuid.UUID) error {
	l, err := s.Get(ctx, host, id)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, "listing", id, host, models.AuditDeleted, map[string]any{"title": l.Title})
	return nil
}
