package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/miky2184/chargeability-manager-api/internal/auth"
	"github.com/miky2184/chargeability-manager-api/internal/models"
	"github.com/miky2184/chargeability-manager-api/internal/repo"
)

type ctxKey string

const userKey ctxKey = "user"

// Unauthorized writes the uniform 401 challenge: empty body, bearer challenge
// header. Every auth failure goes through here so callers cannot tell a bad
// signature from an expired token from an unknown subject.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
}

// RequireAuth verifies the bearer token and resolves its subject against the
// user store. The resolved user is stored on the request context.
func RequireAuth(tokens *auth.TokenManager, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				Unauthorized(w)
				return
			}

			subject, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				Unauthorized(w)
				return
			}

			user, err := users.FindByUsername(r.Context(), subject)
			if err != nil {
				// Unknown subject and lookup failure both collapse into 401.
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("auth: user lookup failed", "error", err)
				}
				Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
