package orders

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
	"github.com/storepilot/storepilot/internal/shared"
)

// Handler exposes the scoped order listing.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// List renders the scoped order table, filterable by status.
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

	var status *OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := OrderStatus(raw)
		switch st {
		case OrderStatusPending, OrderStatusPaid, OrderStatusShipped:
			status = &st
		default:
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown order status")
			return
		}
	}

	page, perPage := pageParams(r)
	result, total, err := h.service.List(r.Context(), scope, status, perPage, (page-1)*perPage)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []OrderWithStore{}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":     result,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage <= 0 || perPage > 200 {
		perPage = 50
	}
	return page, perPage
}
