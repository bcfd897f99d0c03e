// internal/app/features/requests/routes.go
package requests

import (
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the requests subrouter. Accept/decline are gated to the
// proxy role here; the engine's ownership predicate remains the real check.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleProxy))
		r.Post("/{requestID}/accept", h.Accept)
		r.Post("/{requestID}/decline", h.Decline)
	})

	return r
}
