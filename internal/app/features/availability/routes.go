// internal/app/features/availability/routes.go
package availability

import (
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the availability subrouter. Role rules live in the
// handlers: declaring and the self-listing are proxy-only, the per-event
// listing is open to any signed-in user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Declare)
	r.Delete("/{availabilityID}", h.Withdraw)

	return r
}
