package users

import (
	"log/slog"
	"net/http"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// Handler exposes the scoped user directory.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List renders the scoped user directory.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.Directory(r.Context(), scope)
	if err != nil {
		h.logger.Error("user directory", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"users": result})
}
