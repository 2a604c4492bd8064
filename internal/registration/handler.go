package registration

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// Handler exposes the gated registration endpoint.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes attaches the registration route with its own tighter rate
// limit on top of the global one.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Post("/register", h.Register)
	})
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, httpx.ErrValidation)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed",
			"all fields including registration code are required")
		return
	}

	ident, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.logger.Warn("registration rejected", slog.String("email", req.Email), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("identity registered", slog.String("identity_id", ident.ID))
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user": map[string]string{
			"id":    ident.ID,
			"email": ident.Email,
			"name":  ident.Name,
		},
	})
}
