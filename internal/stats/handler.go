package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// Handler exposes the scoped dashboard summary.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the dashboard routes to the router.
func (h *Handler) MountRoutes(r chi.Router, authz identity.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(authz.WithPrincipal)
		r.Get("/dashboard/summary", h.Summary)
	})
}

// Summary renders the scoped revenue/order/store aggregates.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	principal, ok := identity.PrincipalFromContext(r.Context())
	if !ok {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}

	scope, err := identity.ScopeFor(principal.Role, principal.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), scope)
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, summary)
}
