// internal/app/features/assignments/routes.go
package assignments

import (
	"github.com/dalemusser/standin/internal/app/system/auth"
	"github.com/dalemusser/standin/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the assignments subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(models.RoleAdmin))
		r.Post("/", h.Create)
	})

	return r
}
