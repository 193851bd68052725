// internal/api/middleware.go
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"userbase/internal/auth"
	"userbase/internal/domain"
	"userbase/internal/service"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// Authenticator returns middleware that guards a route behind a bearer token.
// It extracts the Authorization header, verifies the token, re-resolves the
// referenced user (so tokens of deleted accounts stop working), and stores the
// user in the request context. Every failure path collapses to a single 401.
func Authenticator(svc service.UserService, jwtSecret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				respondUnauthorized(w)
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			userID, err := auth.ParseToken(tokenString, jwtSecret)
			if err != nil {
				logger.Info("Rejected request with invalid token", "error", err)
				respondUnauthorized(w)
				return
			}

			user, err := svc.GetUserByID(r.Context(), userID)
			if err != nil {
				logger.Info("Rejected token for unresolvable user", "user_id", userID, "error", err)
				respondUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user stored by Authenticator.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

func respondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"message":"Unauthorized"}`))
}
