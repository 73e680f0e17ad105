package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/repository/memory"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	svc   *Services
	host  models.User
	guest models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{ctx: context.Background(), store: store, svc: New(memory.NewRepositories(store))}
	f.host = f.register(t, `{"email":"host@example.com","first_name":"Hana","last_name":"Host","role":"host"}`)
	f.guest = f.register(t, `{"email":"guest@example.com","first_name":"Gus","last_name":"Guest","role":"guest"}`)
	return f
}

func input[T any](t *testing.T, body string, mode serializers.Mode) *T {
	t.Helper()
	v := new(T)
	if err := json.Unmarshal([]byte(body), v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if vv, ok := any(v).(interface{ Validate(serializers.Mode) error }); ok {
		if err := vv.Validate(mode); err != nil {
			t.Fatalf("input %s: %v", body, err)
		}
	}
	return v
}

func (f *fixture) register(t *testing.T, body string) models.User {
	t.Helper()
	in := input[serializers.UserInput](t, body, serializers.Patch)
	u, err := f.svc.Users.Register(f.ctx, models.User{}, in, "password123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func (f *fixture) listing(t *testing.T, host models.User, body string) models.Listing {
	t.Helper()
	l, err := f.svc.Listings.Create(f.ctx, host, input[serializers.ListingInput](t, body, serializers.Create))
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

const cottage = `{"title":"Cozy Cottage","description":"d","location":"Cape Town","price_per_night":"500.00","max_guests":4}`

func fieldMsg(t *testing.T, err error, field string) string {
	t.Helper()
	errs, ok := validate.As(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, e := range errs {
		if e.Field == field {
			return e.Msg
		}
	}
	t.Fatalf("no error on %s: %v", field, errs)
	return ""
}

func TestRegisterRules(t *testing.T) {
	f := newFixture(t)

	in := input[serializers.UserInput](t, `{"email":"GUEST@EXAMPLE.COM","first_name":"X","last_name":"Y"}`, serializers.Create)
	_, err := f.svc.Users.Register(f.ctx, models.User{}, in, "password123")
	if msg := fieldMsg(t, err, "email"); msg != "user with this email already exists." {
		t.Fatalf("duplicate email msg = %q", msg)
	}

	in = input[serializers.UserInput](t, `{"email":"boss@example.com","first_name":"X","last_name":"Y","role":"admin"}`, serializers.Create)
	if _, err := f.svc.Users.Register(f.ctx, models.User{}, in, "password123"); err == nil {
		t.Fatal("anonymous admin sign-up should fail")
	}
	admin, err := f.svc.Users.Register(f.ctx, models.User{Role: models.RoleAdmin}, in, "password123")
	if err != nil || !admin.IsAdmin() {
		t.Fatalf("admin may create admins: %v", err)
	}

	in = input[serializers.UserInput](t, `{"email":"plain@example.com","first_name":"X","last_name":"Y"}`, serializers.Create)
	u, err := f.svc.Users.Register(f.ctx, models.User{}, in, "password123")
	if err != nil || u.Role != models.RoleGuest {
		t.Fatalf("default role = %q, err %v", u.Role, err)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatal("password not hashed")
	}
}

func TestUserUpdateAndDeletePermissions(t *testing.T) {
	f := newFixture(t)
	patch := input[serializers.UserInput](t, `{"first_name":"Changed"}`, serializers.Patch)

	if _, err := f.svc.Users.Update(f.ctx, f.guest, f.host.ID, patch, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user update: %v", err)
	}
	u, err := f.svc.Users.Update(f.ctx, f.guest, f.guest.ID, patch, nil)
	if err != nil || u.FirstName != "Changed" || u.LastName != "Guest" {
		t.Fatalf("self patch: %+v %v", u, err)
	}
	if err := f.svc.Users.Delete(f.ctx, f.guest, f.host.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other user delete: %v", err)
	}
	if err := f.svc.Users.Delete(f.ctx, models.User{ID: uuid.New(), Role: models.RoleAdmin}, f.host.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := f.svc.Users.Get(f.ctx, f.host.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("deleted user still found: %v", err)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)

	tok, err := f.svc.Users.Login(f.ctx, "guest@example.com", "password123")
	if err != nil || len(tok) != 40 {
		t.Fatalf("login: %q %v", tok, err)
	}
	again, _ := f.svc.Users.Login(f.ctx, "guest@example.com", "password123")
	if again != tok {
		t.Fatal("repeated login should return the same token")
	}

	tests := []struct {
		email, password string
		want            error
	}{
		{"", "password123", ErrMissingCredentials},
		{"guest@example.com", "", ErrMissingCredentials},
		{"guest@example.com", "wrong-password", ErrInvalidCredentials},
		{"nobody@example.com", "password123", ErrInvalidCredentials},
	}
	for _, tc := range tests {
		if _, err := f.svc.Users.Login(f.ctx, tc.email, tc.password); !errors.Is(err, tc.want) {
			t.Errorf("login(%q,%q) = %v, want %v", tc.email, tc.password, err, tc.want)
		}
	}
}

func TestListingScopedToHost(t *testing.T) {
	f := newFixture(t)
	other := f.register(t, `{"email":"other@example.com","first_name":"O","last_name":"H","role":"host"}`)
	mine := f.listing(t, f.host, cottage)
	theirs := f.listing(t, other, `{"title":"Villa","description":"d","location":"Durban","price_per_night":"10","max_guests":2}`)

	ls, err := f.svc.Listings.List(f.ctx, f.host, repo.Page{Limit: 50})
	if err != nil || len(ls) != 1 || ls[0].ID != mine.ID {
		t.Fatalf("host list = %+v %v", ls, err)
	}
	if _, err := f.svc.Listings.Get(f.ctx, f.host, theirs.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign listing visible: %v", err)
	}
	patch := input[serializers.ListingInput](t, `{"title":"Hijack"}`, serializers.Patch)
	if _, err := f.svc.Listings.Update(f.ctx, f.host, theirs.ID, patch); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign listing updated: %v", err)
	}
	if err := f.svc.Listings.Delete(f.ctx, f.host, theirs.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign listing deleted: %v", err)
	}
	if mine.HostID != f.host.ID || !mine.IsAvailable {
		t.Fatalf("defaults: %+v", mine)
	}
}

func TestBookingLifecycle(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.host, cottage)

	body := `{"listing":"` + l.ID.String() + `","check_in_date":"2025-02-01","check_out_date":"2025-02-04","num_guests":2}`
	b, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
	if err != nil {
		t.Fatal(err)
	}
	if b.Status != models.BookingPending || b.TotalPrice.String() != "1500" || b.GuestID != f.guest.ID {
		t.Fatalf("created: %+v", b)
	}

	patch := input[serializers.BookingInput](t, `{"check_out_date":"2025-02-02"}`, serializers.Patch)
	b, err = f.svc.Bookings.Update(f.ctx, f.guest, b.ID, patch)
	if err != nil || b.TotalPrice.String() != "500" {
		t.Fatalf("repriced: %+v %v", b, err)
	}

	over := input[serializers.BookingInput](t, `{"num_guests":9}`, serializers.Patch)
	_, err = f.svc.Bookings.Update(f.ctx, f.guest, b.ID, over)
	if msg := fieldMsg(t, err, "num_guests"); msg != models.MsgOverCapacity {
		t.Fatalf("capacity msg = %q", msg)
	}

	b, err = f.svc.Bookings.Cancel(f.ctx, f.guest, b.ID)
	if err != nil || b.Status != models.BookingCancelled {
		t.Fatalf("cancel: %+v %v", b, err)
	}
	if _, err := f.svc.Bookings.Cancel(f.ctx, f.guest, b.ID); err == nil {
		t.Fatal("second cancel should fail")
	}

	var actions []models.AuditAction
	for _, e := range f.store.AuditLogs() {
		if e.EntityType == "booking" {
			actions = append(actions, e.Action)
		}
	}
	if len(actions) != 3 {
		t.Fatalf("booking audit = %v", actions)
	}
}

func TestBookingScopedToGuest(t *testing.T) {
	f := newFixture(t)
	other := f.register(t, `{"email":"g2@example.com","first_name":"G","last_name":"Two"}`)
	l := f.listing(t, f.host, cottage)
	body := `{"listing":"` + l.ID.String() + `","check_in_date":"2025-02-01","check_out_date":"2025-02-04","num_guests":1}`
	b, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.Bookings.Get(f.ctx, other, b.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign booking visible: %v", err)
	}
	if err := f.svc.Bookings.Delete(f.ctx, other, b.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign booking deleted: %v", err)
	}
	bs, _ := f.svc.Bookings.List(f.ctx, other, repo.Page{Limit: 50})
	if len(bs) != 0 {
		t.Fatalf("other guest sees %d bookings", len(bs))
	}
}

func TestBookingUnknownListing(t *testing.T) {
	f := newFixture(t)
	body := `{"listing":"` + uuid.NewString() + `","check_in_date":"2025-02-01","check_out_date":"2025-02-04","num_guests":1}`
	_, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
	fieldMsg(t, err, "listing")
}

func TestReviewRules(t *testing.T) {
	f := newFixture(t)
	other := f.register(t, `{"email":"g2@example.com","first_name":"G","last_name":"Two"}`)
	l := f.listing(t, f.host, cottage)
	l2 := f.listing(t, f.host, `{"title":"Flat","description":"d","location":"Durban","price_per_night":"750","max_guests":2}`)
	body := `{"listing":"` + l.ID.String() + `","check_in_date":"2025-02-01","check_out_date":"2025-02-04","num_guests":1}`
	b, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
	if err != nil {
		t.Fatal(err)
	}

	_, err = f.svc.Reviews.Create(f.ctx, other, input[serializers.ReviewInput](t, `{"booking":"`+b.ID.String()+`","rating":4}`, serializers.Create))
	if msg := fieldMsg(t, err, "booking"); msg != models.MsgReviewerNotGuest {
		t.Fatalf("reviewer msg = %q", msg)
	}

	wrong := `{"booking":"` + b.ID.String() + `","listing":"` + l2.ID.String() + `","rating":4}`
	_, err = f.svc.Reviews.Create(f.ctx, f.guest, input[serializers.ReviewInput](t, wrong, serializers.Create))
	if msg := fieldMsg(t, err, "listing"); msg != models.MsgListingMismatch {
		t.Fatalf("listing msg = %q", msg)
	}

	rv, err := f.svc.Reviews.Create(f.ctx, f.guest, input[serializers.ReviewInput](t, `{"booking":"`+b.ID.String()+`","rating":4}`, serializers.Create))
	if err != nil || rv.ListingID != l.ID {
		t.Fatalf("review: %+v %v", rv, err)
	}

	_, err = f.svc.Reviews.Create(f.ctx, f.guest, input[serializers.ReviewInput](t, `{"booking":"`+b.ID.String()+`","rating":2}`, serializers.Create))
	fieldMsg(t, err, "booking")

	rv, err = f.svc.Reviews.Update(f.ctx, f.guest, rv.ID, input[serializers.ReviewInput](t, `{"comment":"Lovely"}`, serializers.Patch))
	if err != nil || rv.Comment == nil || *rv.Comment != "Lovely" || rv.Rating != 4 {
		t.Fatalf("patch review: %+v %v", rv, err)
	}
	if _, err := f.svc.Reviews.Get(f.ctx, other, rv.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("foreign review visible: %v", err)
	}
}

func TestBookingComputedTotalMustFitColumn(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.host, `{"title":"Palace","description":"d","location":"Durban","price_per_night":"99999999.99","max_guests":2}`)
	body := `{"listing":"` + l.ID.String() + `","check_in_date":"2025-02-01","check_out_date":"2025-02-03","num_guests":1}`
	_, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
	if msg := fieldMsg(t, err, "total_price"); msg != models.MsgMoneyDigits {
		t.Fatalf("total msg = %q", msg)
	}
	bs, _ := f.svc.Bookings.List(f.ctx, f.guest, repo.Page{Limit: 50})
	if len(bs) != 0 {
		t.Fatalf("oversized booking stored: %+v", bs)
	}
}

func TestReviewMovedOntoReviewedBooking(t *testing.T) {
	f := newFixture(t)
	l := f.listing(t, f.host, cottage)
	book := func(in, out string) models.Booking {
		body := `{"listing":"` + l.ID.String() + `","check_in_date":"` + in + `","check_out_date":"` + out + `","num_guests":1}`
		b, err := f.svc.Bookings.Create(f.ctx, f.guest, input[serializers.BookingInput](t, body, serializers.Create))
		if err != nil {
			t.Fatal(err)
		}
		return b
	}
	b1, b2 := book("2025-03-01", "2025-03-03"), book("2025-04-01", "2025-04-03")
	review := func(b models.Booking) models.Review {
		rv, err := f.svc.Reviews.Create(f.ctx, f.guest, input[serializers.ReviewInput](t, `{"booking":"`+b.ID.String()+`","rating":3}`, serializers.Create))
		if err != nil {
			t.Fatal(err)
		}
		return rv
	}
	review(b1)
	r2 := review(b2)

	_, err := f.svc.Reviews.Update(f.ctx, f.guest, r2.ID, input[serializers.ReviewInput](t, `{"booking":"`+b1.ID.String()+`"}`, serializers.Patch))
	if msg := fieldMsg(t, err, "booking"); msg != "review with this booking already exists." {
		t.Fatalf("duplicate msg = %q", msg)
	}
	if _, err := f.svc.Reviews.Update(f.ctx, f.guest, r2.ID, input[serializers.ReviewInput](t, `{"rating":5}`, serializers.Patch)); err != nil {
		t.Fatalf("updating in place should not trip the duplicate check: %v", err)
	}
}
