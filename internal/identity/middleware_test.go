package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepilot/storepilot/internal/shared"
)

func sessionRequest(t *testing.T, userID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	sess := &shared.Session{}
	if userID != "" {
		sess.SetUser(userID)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestWithPrincipalRejectsAnonymous(t *testing.T) {
	mw := Middleware{Resolver: NewResolver(newMockProfileRepo())}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	res := httptest.NewRecorder()
	mw.WithPrincipal(next).ServeHTTP(res, sessionRequest(t, ""))
	assert.Equal(t, http.StatusUnauthorized, res.Code)

	res = httptest.NewRecorder()
	mw.WithPrincipal(next).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/stores", nil))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestWithPrincipalStoresResolvedRole(t *testing.T) {
	repo := newMockProfileRepo()
	repo.owners["u1"] = true
	mw := Middleware{Resolver: NewResolver(repo)}

	var seen Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		seen = p
	})

	res := httptest.NewRecorder()
	mw.WithPrincipal(next).ServeHTTP(res, sessionRequest(t, "u1"))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "u1", seen.ID)
	assert.Equal(t, RoleOwner, seen.Role)
}

func TestWithPrincipalPassesUnresolvedAsNone(t *testing.T) {
	mw := Middleware{Resolver: NewResolver(newMockProfileRepo())}

	var seen Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
	})

	res := httptest.NewRecorder()
	mw.WithPrincipal(next).ServeHTTP(res, sessionRequest(t, "stranger"))
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, RoleNone, seen.Role)
}

func TestRequireAdminBlocksWrongRole(t *testing.T) {
	repo := newMockProfileRepo()
	repo.owners["u1"] = true
	mw := Middleware{Resolver: NewResolver(repo)}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})

	res := httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(res, sessionRequest(t, "u1"))
	assert.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	repo := newMockProfileRepo()
	repo.admins["root"] = true
	mw := Middleware{Resolver: NewResolver(repo)}

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	res := httptest.NewRecorder()
	mw.RequireAdmin(next).ServeHTTP(res, sessionRequest(t, "root"))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.True(t, called)
}
