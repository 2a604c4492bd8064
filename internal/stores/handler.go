package stores

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
	"github.com/storepilot/storepilot/internal/shared"
)

// Handler exposes store listing and the admin store mutations.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	assignment *AssignmentService
	validator  *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, assignment *AssignmentService) *Handler {
	return &Handler{
		logger:     logger,
		service:    service,
		assignment: assignment,
		validator:  validator.New(),
	}
}

// List renders the scoped store table.
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

	page, perPage := pageParams(r)
	result, total, err := h.service.List(r.Context(), scope, perPage, (page-1)*perPage)
	if err != nil {
		h.logger.Error("list stores", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if result == nil {
		result = []Store{}
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"stores":     result,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

// AssignStore handles POST /admin/assign-store, covering both assignment and
// unassignment via the action field.
func (h *Handler) AssignStore(w http.ResponseWriter, r *http.Request) {
	var req AssignStoreRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "storeId is required")
		return
	}

	if req.Action == "unassign" {
		if err := h.assignment.Unassign(r.Context(), req.StoreID); err != nil {
			h.respondStoreError(w, "unassign store", err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	if err := h.assignment.Assign(r.Context(), req); err != nil {
		h.respondStoreError(w, "assign store", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// CreateStore handles POST /admin/create-store.
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	var req CreateStoreRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "name and owner are required")
		return
	}

	store, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondStoreError(w, "create store", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "store": store})
}

// AssignWebsite handles POST /admin/assign-website.
func (h *Handler) AssignWebsite(w http.ResponseWriter, r *http.Request) {
	var req AssignWebsiteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "User ID and URL are required")
		return
	}

	store, err := h.service.AssignWebsite(r.Context(), req.UserID, req.URL)
	if err != nil {
		h.respondStoreError(w, "assign website", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"success": true, "store": store})
}

func (h *Handler) respondStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	if errors.Is(err, ErrDuplicate) {
		httpx.RespondError(w, httpx.ErrDuplicate)
		return
	}
	if !errors.Is(err, httpx.ErrValidation) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
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
