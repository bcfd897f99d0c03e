// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the events subrouter. All endpoints require a signed-in
// user; creation is additionally gated to admins.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Get("/{eventID}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.Create)
	})

	return r
}
