package stores

import (
	"github.com/go-chi/chi/v5"

	"github.com/storepilot/storepilot/internal/identity"
)

// MountRoutes attaches the store routes to the router.
func (h *Handler) MountRoutes(r chi.Router, authz identity.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authz.WithPrincipal)
		r.Get("/stores", h.List)
	})
	r.Group(func(r chi.Router) {
		r.Use(authz.RequireAdmin)
		r.Post("/admin/assign-store", h.AssignStore)
		r.Post("/admin/create-store", h.CreateStore)
		r.Post("/admin/assign-website", h.AssignWebsite)
	})
}
