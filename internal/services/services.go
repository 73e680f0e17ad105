package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/metrics"
	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

var (
	// ErrForbidden is returned when the actor may see a row but not change it.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	ErrMissingCredentials = errors.New("Must include email and password.")
	ErrInvalidCredentials = errors.New("Unable to log in with provided credentials.")
)

type Services struct {
	Users    *UserService
	Listings *ListingService
	Bookings *BookingService
	Reviews  *ReviewService
}

func New(rs repo.Set) *Services {
	a := auditor{log: rs.AuditLogs}
	return &Services{
		Users:    NewUserService(rs.Users, rs.Tokens, a),
		Listings: NewListingService(rs.Listings, a),
		Bookings: NewBookingService(rs.Bookings, rs.Listings, a),
		Reviews:  NewReviewService(rs.Reviews, rs.Bookings, a),
	}
}

type auditor struct {
	log repo.AuditLogs
}

// record writes an audit entry and counts the write. A failed audit write is
// logged and does not fail the request.
func (a auditor) record(ctx context.Context, entity string, id uuid.UUID, actor models.User, action models.AuditAction, details map[string]any) {
	metrics.EntitiesWritten.WithLabelValues(entity, string(action)).Inc()
	if a.log == nil {
		return
	}
	entry := models.AuditLog{
		EntityType: entity,
		EntityID:   id,
		Action:     action,
		Details:    details,
	}
	if actor.ID != uuid.Nil {
		actorID := actor.ID
		entry.ActorID = &actorID
	}
	if err := a.log.Create(ctx, entry); err != nil {
		slog.Warn("audit log write failed", "entity", entity, "id", id, "action", action, "err", err)
	}
}

func missingRef(field string, id uuid.UUID) error {
	return validate.Errs{{Field: field, Msg: fmt.Sprintf("Invalid pk %q - object does not exist.", id.String())}}
}

func duplicate(field, entity string) error {
	return validate.Errs{{Field: field, Msg: entity + " with this " + field + " already exists."}}
}

// invalid counts a rejected write before handing the error back.
func invalid(entity string, err error) error {
	metrics.ValidationFailures.WithLabelValues(entity).Inc()
	return err
}
