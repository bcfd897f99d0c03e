// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the notifications subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/{notificationID}/read", h.MarkRead)

	return r
}
