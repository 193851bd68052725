// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"userbase/internal/api/handler"
	"userbase/internal/service"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(userHandler *handler.UserHandler, svc service.UserService, jwtSecret []byte, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", userHandler.Welcome)
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/count/users", userHandler.CountUsers)

	// Listing exposes every account, so it sits behind the bearer-token gate.
	r.Group(func(r chi.Router) {
		r.Use(Authenticator(svc, jwtSecret, logger))
		r.Get("/users", userHandler.ListUsers)
	})

	r.Patch("/users/{userID}", userHandler.RenameUser)
	r.Delete("/users/{userID}", userHandler.DeleteUser)

	return r
}
