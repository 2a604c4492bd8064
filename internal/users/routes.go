package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/storepilot/storepilot/internal/identity"
)

// MountRoutes attaches the directory routes to the router.
func (h *Handler) MountRoutes(r chi.Router, authz identity.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authz.WithPrincipal)
		r.Get("/users", h.List)
	})
}
