package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/baharkarakas/stays-backend/internal/auth"
	"github.com/baharkarakas/stays-backend/internal/metrics"
	"github.com/baharkarakas/stays-backend/internal/models"
	repo "github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

// UserPatch copies client-supplied fields onto a user.
type UserPatch interface {
	Apply(u *models.User)
}

type UserService struct {
	r      repo.Users
	tokens repo.Tokens
	audit  auditor
}

func NewUserService(r repo.Users, tokens repo.Tokens, a auditor) *UserService {
	return &UserService{r: r, tokens: tokens, audit: a}
}

// Register creates an account. actor is the zero User for anonymous sign-ups.
func (s *UserService) Register(ctx context.Context, actor models.User, p UserPatch, password string) (models.User, error) {
	var u models.User
	p.Apply(&u)
	if err := s.check(actor, &u); err != nil {
		return models.User{}, err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash

	u, err = s.r.Create(ctx, u)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, invalid("user", duplicate("email", "user"))
	}
	if err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	s.audit.record(ctx, "user", u.ID, actor, models.AuditCreated, map[string]any{"email": u.Email, "role": u.Role})
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.r.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, p repo.Page) ([]models.User, error) {
	return s.r.List(ctx, p)
}

// Update applies p to the user. Only the user themself or an admin may do so.
// A nil password leaves the current one in place.
func (s *UserService) Update(ctx context.Context, actor models.User, id uuid.UUID, p UserPatch, password *string) (models.User, error) {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if actor.ID != u.ID && !actor.IsAdmin() {
		return models.User{}, ErrForbidden
	}
	p.Apply(&u)
	if err := s.check(actor, &u); err != nil {
		return models.User{}, err
	}
	if password != nil {
		if u.PasswordHash, err = auth.HashPassword(*password); err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	u, err = s.r.Update(ctx, u)
	if errors.Is(err, repo.ErrConflict) {
		return models.User{}, invalid("user", duplicate("email", "user"))
	}
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}
	s.audit.record(ctx, "user", u.ID, actor, models.AuditUpdated, map[string]any{"password_changed": password != nil})
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, actor models.User, id uuid.UUID) error {
	u, err := s.r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.ID != u.ID && !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.record(ctx, "user", id, actor, models.AuditDeleted, map[string]any{"email": u.Email})
	return nil
}

// Login verifies the credentials and returns the user's token, issuing one on
// first login. Unknown emails and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", ErrMissingCredentials
	}
	u, err := s.r.GetByEmail(ctx, models.NormalizeEmail(email))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		auth.BurnCompare(password)
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	case err != nil:
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	}

	key, err := auth.NewTokenKey()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	tok, _, err := s.tokens.GetOrCreate(ctx, u.ID, key)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	return tok.Key, nil
}

func (s *UserService) check(actor models.User, u *models.User) error {
	var errs validate.Errs
	if err := u.Validate(); err != nil {
		errs, _ = validate.As(err)
	}
	if u.Role == models.RoleAdmin && !actor.IsAdmin() {
		errs.Set("role", "Only administrators can assign the admin role.")
	}
	if len(errs) > 0 {
		return invalid("user", errs)
	}
	return nil
}
