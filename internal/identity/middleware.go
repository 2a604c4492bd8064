package identity

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/storepilot/storepilot/internal/platform/httpx"
	"github.com/storepilot/storepilot/internal/shared"
)

type principalContextKey struct{}

// ContextWithPrincipal stores the resolved principal in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the resolved principal from context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// Middleware wires role-resolution authorization helpers for HTTP handlers.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
}

// WithPrincipal resolves the session identity's role and stores the
// principal in the request context. Requests without a session identity are
// rejected with 401 before any query runs.
func (m Middleware) WithPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityID, ok := m.currentIdentityID(r)
		if !ok {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		role, err := m.Resolver.Resolve(r.Context(), identityID)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("resolve role", slog.String("identity_id", identityID), slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		ctx := ContextWithPrincipal(r.Context(), Principal{ID: identityID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the current identity resolves to admin. Wrong-role
// callers get 401, matching the dashboard's blocked-render behavior.
func (m Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identityID, ok := m.currentIdentityID(r)
		if !ok {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		role, err := m.Resolver.Resolve(r.Context(), identityID)
		if err != nil {
			if m.Logger != nil {
				m.Logger.Error("resolve role", slog.String("identity_id", identityID), slog.Any("error", err))
			}
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		if role != RoleAdmin {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		ctx := ContextWithPrincipal(r.Context(), Principal{ID: identityID, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m Middleware) currentIdentityID(r *http.Request) (string, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return "", false
	}
	id := strings.TrimSpace(sess.User())
	if id == "" {
		return "", false
	}
	return id, true
}
