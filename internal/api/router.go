package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/stays-backend/internal/api/handlers"
	"github.com/baharkarakas/stays-backend/internal/config"
	"github.com/baharkarakas/stays-backend/internal/metrics"
	"github.com/baharkarakas/stays-backend/internal/middleware"
	"github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/services"
)

func NewRouter(cfg config.Config, rs repository.Set, svc *services.Services) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.StripSlashes)
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	am := middleware.NewAuthMiddleware(rs.Tokens, rs.Users)
	uh := handlers.NewUserHandler(svc.Users)
	lh := handlers.NewListingHandler(svc.Listings)
	bh := handlers.NewBookingHandler(svc.Bookings)
	rh := handlers.NewReviewHandler(svc.Reviews)

	r.Group(func(r chi.Router) {
		r.Use(am.Auth)

		r.Post("/login", uh.Login)

		// ---------- users ----------
		r.Route("/users", func(r chi.Router) {
			r.Get("/", uh.List)
			r.Post("/", uh.Create)
			r.Get("/{id}", uh.Get)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticated)
				r.Put("/{id}", uh.Update)
				r.Patch("/{id}", uh.Update)
				r.Delete("/{id}", uh.Delete)
			})
		})

		// ---------- listings (hosts) ----------
		r.Route("/listings", func(r chi.Router) {
			r.Use(middleware.AuthenticatedAndHost)
			r.Get("/", lh.List)
			r.Post("/", lh.Create)
			r.Get("/{id}", lh.Get)
			r.Put("/{id}", lh.Update)
			r.Patch("/{id}", lh.Update)
			r.Delete("/{id}", lh.Delete)
		})

		// ---------- bookings (guests) ----------
		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.AuthenticatedAndGuest)
			r.Get("/", bh.List)
			r.Post("/", bh.Create)
			r.Get("/{id}", bh.Get)
			r.Put("/{id}", bh.Update)
			r.Patch("/{id}", bh.Update)
			r.Delete("/{id}", bh.Delete)
			r.Post("/{id}/cancel", bh.Cancel)
		})

		// ---------- reviews (guests) ----------
		r.Route("/reviews", func(r chi.Router) {
			r.Use(middleware.AuthenticatedAndGuest)
			r.Get("/", rh.List)
			r.Post("/", rh.Create)
			r.Get("/{id}", rh.Get)
			r.Put("/{id}", rh.Update)
			r.Patch("/{id}", rh.Update)
			r.Delete("/{id}", rh.Delete)
		})
	})

	return r
}
