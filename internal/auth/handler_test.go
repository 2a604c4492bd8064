package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/storepilot/storepilot/internal/auth"
	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/shared"
	_ "github.com/storepilot/storepilot/testing"
)

type stubProvider struct {
	id       string
	email    string
	name     string
	password string
}

func (s *stubProvider) Authenticate(ctx context.Context, email, password string) (*identity.Identity, error) {
	if email != s.email {
		return nil, shared.ErrInvalidCredentials
	}
	hashed, _ := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if bcrypt.CompareHashAndPassword(hashed, []byte(password)) != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return &identity.Identity{ID: s.id, Email: s.email, Name: s.name}, nil
}

func (s *stubProvider) SignUp(ctx context.Context, req identity.SignUpRequest) (*identity.Identity, error) {
	return nil, identity.ErrDuplicateEmail
}

func (s *stubProvider) Get(ctx context.Context, identityID string) (*identity.Identity, error) {
	if identityID != s.id {
		return nil, shared.ErrNotFound
	}
	return &identity.Identity{ID: s.id, Email: s.email, Name: s.name}, nil
}

type stubProfiles struct {
	owners map[string]bool
}

func (s *stubProfiles) IsAdmin(ctx context.Context, id string) (bool, error) { return false, nil }
func (s *stubProfiles) IsOwner(ctx context.Context, id string) (bool, error) {
	return s.owners[id], nil
}
func (s *stubProfiles) LegacyRole(ctx context.Context, id string) (identity.Role, error) {
	return identity.RoleNone, shared.ErrNotFound
}

func newAuthHandler(t *testing.T, provider identity.Provider) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	resolver := identity.NewResolver(&stubProfiles{owners: map[string]bool{"id-1": true}})
	handler := auth.NewHandler(nil, auth.NewService(provider, resolver), sessionManager, csrfManager)
	return handler, sessionManager
}

func withSession(t *testing.T, sm *shared.SessionManager, req *http.Request) (*http.Request, *shared.Session) {
	t.Helper()
	sess, err := sm.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func TestLoginSuccessBindsSession(t *testing.T) {
	provider := &stubProvider{id: "id-1", email: "owner@test.local", name: "Owner", password: "correctpass"}
	handler, sessionManager := newAuthHandler(t, provider)

	body := `{"email":"owner@test.local","password":"correctpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req, sess := withSession(t, sessionManager, req)

	res := httptest.NewRecorder()
	handler.Login(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}
	if sess.User() != "id-1" {
		t.Fatalf("expected session user id-1, got %q", sess.User())
	}

	var payload struct {
		Role      string `json:"role"`
		CSRFToken string `json:"csrf_token"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Role != "owner" {
		t.Fatalf("expected role owner, got %q", payload.Role)
	}
	if payload.CSRFToken == "" {
		t.Fatalf("expected csrf token in response")
	}
}

func TestLoginRotatesSessionID(t *testing.T) {
	provider := &stubProvider{id: "id-1", email: "owner@test.local", name: "Owner", password: "correctpass"}
	handler, sessionManager := newAuthHandler(t, provider)

	body := `{"email":"owner@test.local","password":"correctpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req, sess := withSession(t, sessionManager, req)
	before := sess.ID

	res := httptest.NewRecorder()
	handler.Login(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}
	if sess.ID == before {
		t.Fatalf("expected a fresh session id after login")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	provider := &stubProvider{id: "id-1", email: "owner@test.local", name: "Owner", password: "correctpass"}
	handler, sessionManager := newAuthHandler(t, provider)

	body := `{"email":"owner@test.local","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req, sess := withSession(t, sessionManager, req)

	res := httptest.NewRecorder()
	handler.Login(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Fatalf("expected no session user, got %q", sess.User())
	}
}

func TestLoginMissingFields(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"x@y.com"}`))
	req.Header.Set("Content-Type", "application/json")
	req, _ = withSession(t, sessionManager, req)

	res := httptest.NewRecorder()
	handler.Login(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", res.Code)
	}
}

func TestSessionWithoutUserIsUnauthorized(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, &stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req, _ = withSession(t, sessionManager, req)

	res := httptest.NewRecorder()
	handler.Session(res, req)

	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", res.Code)
	}
}

func TestSessionReportsResolvedRole(t *testing.T) {
	provider := &stubProvider{id: "id-1", email: "owner@test.local", name: "Owner", password: "correctpass"}
	handler, sessionManager := newAuthHandler(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req, sess := withSession(t, sessionManager, req)
	sess.SetUser("id-1")

	res := httptest.NewRecorder()
	handler.Session(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", res.Code, res.Body.String())
	}
	var payload struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Role != "owner" {
		t.Fatalf("expected role owner, got %q", payload.Role)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	provider := &stubProvider{id: "id-1", email: "owner@test.local", name: "Owner", password: "correctpass"}
	handler, sessionManager := newAuthHandler(t, provider)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req, sess := withSession(t, sessionManager, req)
	sess.SetUser("id-1")

	res := httptest.NewRecorder()
	handler.Logout(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.Code)
	}

	// A destroyed session commits as an expired cookie.
	if err := sessionManager.Commit(req.Context(), res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	cookies := res.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected an expiring session cookie")
	}
	last := cookies[len(cookies)-1]
	if last.Name != sessionManager.CookieName() || last.MaxAge != -1 {
		t.Fatalf("expected session cookie expired, got %+v", last)
	}
}
