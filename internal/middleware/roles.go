package middleware

import (
	"net/http"

	"github.com/baharkarakas/stays-backend/internal/api/httpx"
	"github.com/baharkarakas/stays-backend/internal/models"
)

// Authenticated rejects anonymous requests.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Actor(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication credentials were not provided", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole allows only authenticated actors holding one of roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	allowed := map[models.Role]struct{}{}
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, _ := Actor(r.Context())
			if _, ok := allowed[u.Role]; !ok {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "you do not have permission to perform this action", nil)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}

var (
	AuthenticatedAndGuest = RequireRole(models.RoleGuest)
	AuthenticatedAndHost  = RequireRole(models.RoleHost)
)
