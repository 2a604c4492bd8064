package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/storepilot/storepilot/internal/auth"
	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/observability"
	"github.com/storepilot/storepilot/internal/orders"
	"github.com/storepilot/storepilot/internal/registration"
	"github.com/storepilot/storepilot/internal/shared"
	"github.com/storepilot/storepilot/internal/stats"
	"github.com/storepilot/storepilot/internal/stores"
	"github.com/storepilot/storepilot/internal/users"
	"github.com/storepilot/storepilot/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics
	Authz          identity.Middleware

	AuthHandler         *auth.Handler
	RegistrationHandler *registration.Handler
	StoresHandler       *stores.Handler
	OrdersHandler       *orders.Handler
	UsersHandler        *users.Handler
	StatsHandler        *stats.Handler
	JobsHandler         *jobs.Handler
}

// NewRouter constructs the chi.Router with StorePilot defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)
	params.RegistrationHandler.MountRoutes(r)
	params.StoresHandler.MountRoutes(r, params.Authz)
	params.OrdersHandler.MountRoutes(r, params.Authz)
	params.UsersHandler.MountRoutes(r, params.Authz)
	params.StatsHandler.MountRoutes(r, params.Authz)

	if params.JobsHandler != nil {
		r.Route("/admin/jobs", func(r chi.Router) {
			r.Use(params.Authz.RequireAdmin)
			params.JobsHandler.MountRoutes(r)
		})
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
