package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/api/serializers"
	"github.com/baharkarakas/stays-backend/internal/metrics"
	"github.com/baharkarakas/stays-backend/internal/middleware"
	"github.com/baharkarakas/stays-backend/internal/models"
	"github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/services"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

// writeServiceError maps service and repository errors onto the error envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errs, ok := validate.As(err); ok {
		httpx.WriteValidation(w, errs)
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		httpx.NotFound(w)
	case errors.Is(err, services.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, "forbidden", err.Error(), nil)
	case errors.Is(err, services.ErrMissingCredentials), errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_credentials", err.Error(), nil)
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
			"request_id", middleware.RequestIDFrom(r.Context()),
		)
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

// idParam parses the {id} URL parameter. A malformed id is reported as not found.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.NotFound(w)
		return uuid.Nil, false
	}
	return id, true
}

// modeOf picks the field requirements from the request method.
func modeOf(r *http.Request) serializers.Mode {
	switch r.Method {
	case http.MethodPost:
		return serializers.Create
	case http.MethodPatch:
		return serializers.Patch
	}
	return serializers.Replace
}

type validatable interface {
	Validate(serializers.Mode) error
}

// bind decodes and validates the body for entity. It writes the response
// itself and returns false when the input is rejected.
func bind(w http.ResponseWriter, r *http.Request, entity string, in validatable) bool {
	if !httpx.DecodeJSON(w, r, in) {
		return false
	}
	if err := in.Validate(modeOf(r)); err != nil {
		metrics.ValidationFailures.WithLabelValues(entity).Inc()
		writeServiceError(w, r, err)
		return false
	}
	return true
}

// actor returns the authenticated user. Routes using it sit behind the role
// middleware, so the zero value is never seen there.
func actor(r *http.Request) models.User {
	u, _ := middleware.Actor(r.Context())
	return u
}
