package middleware

import (
	"context"

	"github.com/baharkarakas/stays-backend/internal/models"
)

type actorKey struct{}

// WithActor attaches the authenticated user to ctx.
func WithActor(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, actorKey{}, u)
}

// Actor returns the authenticated user, if any.
func Actor(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(actorKey{}).(models.User)
	return u, ok
}
