package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/repository"
)

type AuthMiddleware struct {
	Tokens repository.Tokens
	Users  repository.Users
}

func NewAuthMiddleware(tokens repository.Tokens, users repository.Users) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens, Users: users}
}

// tokenFrom accepts "Token <key>" and "Bearer <key>".
func tokenFrom(r *http.Request) (string, bool) {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah == "" {
		return "", false
	}
	scheme, key, ok := strings.Cut(ah, " ")
	if !ok {
		return "", true
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
		return strings.TrimSpace(key), true
	}
	return "", true
}

// Auth resolves the token, if one is sent, and attaches the actor. Requests
// without credentials pass through anonymously; bad credentials are rejected.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, sent := tokenFrom(r)
		if !sent {
			next.ServeHTTP(w, r)
			return
		}
		if key == "" {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil)
			return
		}

		tok, err := m.Tokens.GetByKey(r.Context(), key)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				slog.Error("token lookup", "err", err, "request_id", RequestIDFrom(r.Context()))
			}
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token", nil)
			return
		}
		u, err := m.Users.GetByID(r.Context(), tok.UserID)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid token", nil)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), u)))
	})
}
