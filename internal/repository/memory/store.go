// Package memory keeps every repository in process memory. It backs the
// `APP_STORAGE=memory` development mode and the test suites.
package memory

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type Store struct {
	mu       sync.RWMutex
	last     time.Time
	users    map[uuid.UUID]models.User
	listings map[uuid.UUID]models.Listing
	bookings map[uuid.UUID]models.Booking
	reviews  map[uuid.UUID]models.Review
	tokens   map[uuid.UUID]models.AuthToken
	audit    []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]models.User{},
		listings: map[uuid.UUID]models.Listing{},
		bookings: map[uuid.UUID]models.Booking{},
		reviews:  map[uuid.UUID]models.Review{},
		tokens:   map[uuid.UUID]models.AuthToken{},
	}
}

func NewRepositories(s *Store) repo.Set {
	return repo.Set{
		Users:     &usersRepo{s},
		Listings:  &listingsRepo{s},
		Bookings:  &bookingsRepo{s},
		Reviews:   &reviewsRepo{s},
		Tokens:    &tokensRepo{s},
		AuditLogs: &auditLogsRepo{s},
	}
}

// AuditLogs returns a copy of the recorded audit entries, oldest first.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.audit)
}

// now is strictly increasing so newest-first ordering is stable. Callers hold mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// deleteUser and friends emulate ON DELETE CASCADE. Callers hold mu.
func (s *Store) deleteUser(id uuid.UUID) {
	delete(s.users, id)
	delete(s.tokens, id)
	for lid, l := range s.listings {
		if l.HostID == id {
			s.deleteListing(lid)
		}
	}
	for bid, b := range s.bookings {
		if b.GuestID == id {
			s.deleteBooking(bid)
		}
	}
	for rid, r := range s.reviews {
		if r.ReviewerID == id {
			delete(s.reviews, rid)
		}
	}
}

func (s *Store) deleteListing(id uuid.UUID) {
	delete(s.listings, id)
	for bid, b := range s.bookings {
		if b.ListingID == id {
			s.deleteBooking(bid)
		}
	}
	for rid, r := range s.reviews {
		if r.ListingID == id {
			delete(s.reviews, rid)
		}
	}
}

func (s *Store) deleteBooking(id uuid.UUID) {
	delete(s.bookings, id)
	for rid, r := range s.reviews {
		if r.BookingID == id {
			delete(s.reviews, rid)
		}
	}
}

func (s *Store) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range s.users {
		if u.ID != except && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// paginate sorts newest first and applies the page window.
func paginate[T any](items []T, created func(T) time.Time, p repo.Page) []T {
	slices.SortFunc(items, func(a, b T) int { return created(b).Compare(created(a)) })
	if p.Offset >= len(items) {
		return []T{}
	}
	items = items[p.Offset:]
	if p.Limit > 0 && p.Limit < len(items) {
		items = items[:p.Limit]
	}
	return items
}
