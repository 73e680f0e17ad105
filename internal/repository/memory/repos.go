package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
)

type usersRepo struct{ s *Store }

func (r *usersRepo) Create(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.emailTaken(u.Email, uuid.Nil) {
		return models.User{}, repo.ErrConflict
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = r.s.now()
	r.s.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (r *usersRepo) List(_ context.Context, p repo.Page) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return paginate(out, func(u models.User) time.Time { return u.CreatedAt }, p), nil
}

func (r *usersRepo) Update(_ context.Context, u models.User) (models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.users[u.ID]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	if r.s.emailTaken(u.Email, u.ID) {
		return models.User{}, repo.ErrConflict
	}
	u.CreatedAt = cur.CreatedAt
	r.s.users[u.ID] = u
	return u, nil
}

func (r *usersRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repo.ErrNotFound
	}
	r.s.deleteUser(id)
	return nil
}

type listingsRepo struct{ s *Store }

func (r *listingsRepo) Create(_ context.Context, l models.Listing) (models.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[l.HostID]; !ok {
		return models.Listing{}, repo.ErrNotFound
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = r.s.now()
	l.UpdatedAt = l.CreatedAt
	r.s.listings[l.ID] = l
	return l, nil
}

func (r *listingsRepo) GetByID(_ context.Context, id uuid.UUID) (models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.listings[id]
	if !ok {
		return models.Listing{}, repo.ErrNotFound
	}
	return l, nil
}

func (r *listingsRepo) GetByTitle(_ context.Context, title string) (models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *models.Listing
	for _, l := range r.s.listings {
		if l.Title == title && (found == nil || l.CreatedAt.Before(found.CreatedAt)) {
			found = &l
		}
	}
	if found == nil {
		return models.Listing{}, repo.ErrNotFound
	}
	return *found, nil
}

func (r *listingsRepo) ListByHost(_ context.Context, hostID uuid.UUID, p repo.Page) ([]models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Listing
	for _, l := range r.s.listings {
		if l.HostID == hostID {
			out = append(out, l)
		}
	}
	return paginate(out, func(l models.Listing) time.Time { return l.CreatedAt }, p), nil
}

func (r *listingsRepo) Update(_ context.Context, l models.Listing) (models.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.listings[l.ID]
	if !ok {
		return models.Listing{}, repo.ErrNotFound
	}
	l.HostID = cur.HostID
	l.CreatedAt = cur.CreatedAt
	l.UpdatedAt = r.s.now()
	r.s.listings[l.ID] = l
	return l, nil
}

func (r *listingsRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return repo.ErrNotFound
	}
	r.s.deleteListing(id)
	return nil
}

type bookingsRepo struct{ s *Store }

func (r *bookingsRepo) Create(_ context.Context, b models.Booking) (models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[b.ListingID]; !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	if _, ok := r.s.users[b.GuestID]; !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	b.CreatedAt = r.s.now()
	r.s.bookings[b.ID] = b
	return b, nil
}

func (r *bookingsRepo) GetByID(_ context.Context, id uuid.UUID) (models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	return b, nil
}

func (r *bookingsRepo) ListByGuest(_ context.Context, guestID uuid.UUID, p repo.Page) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Booking
	for _, b := range r.s.bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return paginate(out, func(b models.Booking) time.Time { return b.CreatedAt }, p), nil
}

func (r *bookingsRepo) Update(_ context.Context, b models.Booking) (models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.bookings[b.ID]
	if !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	if _, ok := r.s.listings[b.ListingID]; !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	b.GuestID = cur.GuestID
	b.CreatedAt = cur.CreatedAt
	r.s.bookings[b.ID] = b
	return b, nil
}

func (r *bookingsRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return repo.ErrNotFound
	}
	r.s.deleteBooking(id)
	return nil
}

type reviewsRepo struct{ s *Store }

func (r *reviewsRepo) Create(_ context.Context, rv models.Review) (models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[rv.BookingID]; !ok {
		return models.Review{}, repo.ErrNotFound
	}
	for _, other := range r.s.reviews {
		if other.BookingID == rv.BookingID {
			return models.Review{}, repo.ErrConflict
		}
	}
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	rv.CreatedAt = r.s.now()
	r.s.reviews[rv.ID] = rv
	return rv, nil
}

func (r *reviewsRepo) GetByID(_ context.Context, id uuid.UUID) (models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return models.Review{}, repo.ErrNotFound
	}
	return rv, nil
}

func (r *reviewsRepo) GetByBooking(_ context.Context, bookingID uuid.UUID) (models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rv := range r.s.reviews {
		if rv.BookingID == bookingID {
			return rv, nil
		}
	}
	return models.Review{}, repo.ErrNotFound
}

func (r *reviewsRepo) ListByReviewer(_ context.Context, reviewerID uuid.UUID, p repo.Page) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Review
	for _, rv := range r.s.reviews {
		if rv.ReviewerID == reviewerID {
			out = append(out, rv)
		}
	}
	return paginate(out, func(rv models.Review) time.Time { return rv.CreatedAt }, p), nil
}

func (r *reviewsRepo) Update(_ context.Context, rv models.Review) (models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.reviews[rv.ID]
	if !ok {
		return models.Review{}, repo.ErrNotFound
	}
	for _, other := range r.s.reviews {
		if other.ID != rv.ID && other.BookingID == rv.BookingID {
			return models.Review{}, repo.ErrConflict
		}
	}
	rv.ReviewerID = cur.ReviewerID
	rv.CreatedAt = cur.CreatedAt
	r.s.reviews[rv.ID] = rv
	return rv, nil
}

func (r *reviewsRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

type tokensRepo struct{ s *Store }

func (r *tokensRepo) GetOrCreate(_ context.Context, userID uuid.UUID, key string) (models.AuthToken, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[userID]; ok {
		return t, false, nil
	}
	if _, ok := r.s.users[userID]; !ok {
		return models.AuthToken{}, false, repo.ErrNotFound
	}
	t := models.AuthToken{Key: key, UserID: userID, CreatedAt: r.s.now()}
	r.s.tokens[userID] = t
	return t, true, nil
}

func (r *tokensRepo) GetByKey(_ context.Context, key string) (models.AuthToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tokens {
		if t.Key == key {
			return t, nil
		}
	}
	return models.AuthToken{}, repo.ErrNotFound
}

type auditLogsRepo struct{ s *Store }

func (r *auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.CreatedAt = r.s.now()
	r.s.audit = append(r.s.audit, l)
	return nil
}
