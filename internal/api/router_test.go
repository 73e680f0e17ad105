package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baharkarakas/stays-backend/internal/config"
	"github.com/baharkarakas/stays-backend/internal/repository/memory"
	"github.com/baharkarakas/stays-backend/internal/services"
)

type client struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	rs := memory.NewRepositories(memory.NewStore())
	return NewRouter(config.Config{}, rs, services.New(rs))
}

func (c client) do(method, path, body string) (int, map[string]any) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec.Code, out
}

func (c client) list(path string) []map[string]any {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Token "+c.token)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		c.t.Fatalf("GET %s = %d %s", path, rec.Code, rec.Body.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		c.t.Fatalf("decode list: %v", err)
	}
	return out
}

// signup registers a user and logs in, returning an authenticated client.
func signup(t *testing.T, h http.Handler, email, role string) client {
	t.Helper()
	anon := client{t: t, h: h}
	code, body := anon.do(http.MethodPost, "/users/", `{"email":"`+email+`","first_name":"F","last_name":"L","role":"`+role+`","password":"password123"}`)
	if code != http.StatusCreated {
		t.Fatalf("signup %s = %d %v", email, code, body)
	}
	if _, leaked := body["password"]; leaked {
		t.Fatal("password echoed back")
	}
	code, body = anon.do(http.MethodPost, "/login/", `{"email":"`+email+`","password":"password123"}`)
	if code != http.StatusOK {
		t.Fatalf("login %s = %d %v", email, code, body)
	}
	return client{t: t, h: h, token: body["token"].(string)}
}

func errorFields(body map[string]any) map[string]string {
	out := map[string]string{}
	details, _ := body["details"].([]any)
	for _, d := range details {
		m := d.(map[string]any)
		out[m["field"].(string)] = m["msg"].(string)
	}
	return out
}

func TestHealth(t *testing.T) {
	h := newServer(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestAccessControl(t *testing.T) {
	h := newServer(t)
	host := signup(t, h, "host@example.com", "host")
	guest := signup(t, h, "guest@example.com", "guest")
	anon := client{t: t, h: h}

	tests := []struct {
		name   string
		c      client
		method string
		path   string
		want   int
	}{
		{"anonymous user list", anon, http.MethodGet, "/users/", http.StatusOK},
		{"anonymous listings", anon, http.MethodGet, "/listings/", http.StatusUnauthorized},
		{"guest on listings", guest, http.MethodGet, "/listings/", http.StatusForbidden},
		{"host on listings", host, http.MethodGet, "/listings", http.StatusOK},
		{"host on bookings", host, http.MethodGet, "/bookings/", http.StatusForbidden},
		{"guest on bookings", guest, http.MethodGet, "/bookings/", http.StatusOK},
		{"guest on reviews", guest, http.MethodGet, "/reviews/", http.StatusOK},
		{"anonymous user delete", anon, http.MethodDelete, "/users/00000000-0000-0000-0000-000000000001/", http.StatusUnauthorized},
		{"bad token", client{t: t, h: h, token: "nope"}, http.MethodGet, "/users/", http.StatusUnauthorized},
		{"malformed id", host, http.MethodGet, "/listings/not-a-uuid/", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.c.t = t
			if code, body := tc.c.do(tc.method, tc.path, ""); code != tc.want {
				t.Fatalf("%s %s = %d, want %d (%v)", tc.method, tc.path, code, tc.want, body)
			}
		})
	}
}

func TestLoginErrors(t *testing.T) {
	h := newServer(t)
	signup(t, h, "guest@example.com", "guest")
	anon := client{t: t, h: h}

	code, body := anon.do(http.MethodPost, "/login/", `{"email":"guest@example.com"}`)
	if code != http.StatusBadRequest || body["error"] != "Must include email and password." {
		t.Fatalf("missing password = %d %v", code, body)
	}
	_, wrong := anon.do(http.MethodPost, "/login/", `{"email":"guest@example.com","password":"wrong-pass"}`)
	_, unknown := anon.do(http.MethodPost, "/login/", `{"email":"ghost@example.com","password":"password123"}`)
	if wrong["error"] != unknown["error"] || wrong["code"] != "invalid_credentials" {
		t.Fatalf("login failures differ: %v vs %v", wrong, unknown)
	}
}

func TestStayFlow(t *testing.T) {
	h := newServer(t)
	host := signup(t, h, "host@example.com", "host")
	guest := signup(t, h, "guest@example.com", "guest")

	code, body := host.do(http.MethodPost, "/listings/", `{"title":"Cozy Cottage","description":"d","location":"Cape Town","price_per_night":"-10","max_guests":4}`)
	if code != http.StatusBadRequest || errorFields(body)["price_per_night"] == "" {
		t.Fatalf("negative price = %d %v", code, body)
	}
	code, listing := host.do(http.MethodPost, "/listings/", `{"title":"Cozy Cottage","description":"d","location":"Cape Town","price_per_night":"500","max_guests":4,"host":"ignored"}`)
	if code != http.StatusCreated || listing["price_per_night"] != "500.00" {
		t.Fatalf("create listing = %d %v", code, listing)
	}
	lid := listing["listing_id"].(string)

	code, body = guest.do(http.MethodPost, "/bookings/", `{"listing":"`+lid+`","check_in_date":"2024-01-10","check_out_date":"2024-01-05","num_guests":2}`)
	if code != http.StatusBadRequest || errorFields(body)["check_out_date"] == "" {
		t.Fatalf("reversed dates = %d %v", code, body)
	}
	code, body = guest.do(http.MethodPost, "/bookings/", `{"listing":"`+lid+`","check_in_date":"2024-01-05","check_out_date":"2024-01-10","num_guests":5}`)
	if code != http.StatusBadRequest || errorFields(body)["num_guests"] == "" {
		t.Fatalf("over capacity = %d %v", code, body)
	}
	code, booking := guest.do(http.MethodPost, "/bookings/", `{"listing":"`+lid+`","check_in_date":"2024-01-05","check_out_date":"2024-01-07","num_guests":2,"booking_status":"confirmed"}`)
	if code != http.StatusCreated || booking["total_price"] != "1000.00" || booking["booking_status"] != "pending" {
		t.Fatalf("create booking = %d %v", code, booking)
	}
	bid := booking["booking_id"].(string)

	if bs := guest.list("/bookings/"); len(bs) != 1 {
		t.Fatalf("guest bookings = %d", len(bs))
	}
	other := signup(t, h, "other@example.com", "guest")
	if bs := other.list("/bookings/"); len(bs) != 0 {
		t.Fatalf("other guest sees %d bookings", len(bs))
	}
	if code, _ := other.do(http.MethodGet, "/bookings/"+bid+"/", ""); code != http.StatusNotFound {
		t.Fatalf("foreign booking = %d", code)
	}

	code, body = other.do(http.MethodPost, "/reviews/", `{"booking":"`+bid+`","rating":5}`)
	if code != http.StatusBadRequest || errorFields(body)["booking"] == "" {
		t.Fatalf("foreign review = %d %v", code, body)
	}
	code, review := guest.do(http.MethodPost, "/reviews/", `{"booking":"`+bid+`","rating":5,"comment":"Great"}`)
	if code != http.StatusCreated || review["listing"] != lid {
		t.Fatalf("create review = %d %v", code, review)
	}
	code, review = guest.do(http.MethodPatch, "/reviews/"+review["review_id"].(string)+"/", `{"rating":4}`)
	if code != http.StatusOK || review["rating"] != float64(4) || review["comment"] != "Great" {
		t.Fatalf("patch review = %d %v", code, review)
	}

	code, booking = guest.do(http.MethodPost, "/bookings/"+bid+"/cancel/", "")
	if code != http.StatusOK || booking["booking_status"] != "cancelled" {
		t.Fatalf("cancel = %d %v", code, booking)
	}

	if code, _ := host.do(http.MethodDelete, "/listings/"+lid+"/", ""); code != http.StatusNoContent {
		t.Fatalf("delete listing = %d", code)
	}
	if bs := guest.list("/bookings/"); len(bs) != 0 {
		t.Fatalf("bookings should cascade, got %d", len(bs))
	}
}

func TestUserSelfService(t *testing.T) {
	h := newServer(t)
	a := signup(t, h, "a@example.com", "guest")
	b := signup(t, h, "b@example.com", "guest")
	users := a.list("/users/")
	ids := map[string]string{}
	for _, u := range users {
		ids[u["email"].(string)] = u["user_id"].(string)
	}

	if code, _ := a.do(http.MethodPatch, "/users/"+ids["b@example.com"]+"/", `{"first_name":"X"}`); code != http.StatusForbidden {
		t.Fatalf("patch other = %d", code)
	}
	code, body := a.do(http.MethodPatch, "/users/"+ids["a@example.com"]+"/", `{"first_name":"Ann"}`)
	if code != http.StatusOK || body["first_name"] != "Ann" {
		t.Fatalf("patch self = %d %v", code, body)
	}
	code, body = a.do(http.MethodPut, "/users/"+ids["a@example.com"]+"/", `{"email":"a@example.com"}`)
	if code != http.StatusBadRequest || errorFields(body)["first_name"] == "" {
		t.Fatalf("partial PUT = %d %v", code, body)
	}
	code, body = b.do(http.MethodPatch, "/users/"+ids["b@example.com"]+"/", `{"email":"a@example.com"}`)
	if code != http.StatusBadRequest || errorFields(body)["email"] == "" {
		t.Fatalf("duplicate email = %d %v", code, body)
	}
}

func TestInputErrorsAreFieldErrors(t *testing.T) {
	h := newServer(t)
	anon := client{t: t, h: h}

	long := strings.Repeat("p", 100)
	code, body := anon.do(http.MethodPost, "/users/", `{"email":"long@example.com","first_name":"F","last_name":"L","password":"`+long+`"}`)
	if code != http.StatusBadRequest || body["code"] != "validation_error" || errorFields(body)["password"] == "" {
		t.Fatalf("long password = %d %v", code, body)
	}

	host := signup(t, h, "host@example.com", "host")
	code, body = host.do(http.MethodPost, "/listings/", `{"title":"T","description":"d","location":"L","price_per_night":"abc","max_guests":2}`)
	if code != http.StatusBadRequest || body["code"] != "validation_error" || errorFields(body)["price_per_night"] == "" {
		t.Fatalf("bad price = %d %v", code, body)
	}
}
