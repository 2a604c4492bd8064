package stores

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
)

type mockRepo struct {
	stores map[string]Store
	owners map[string][2]string // id -> {name, email}
	legacy map[string]string    // id -> role

	createErr    error
	updateErr    error
	upsertErr    error
	legacyErr    error
	legacyCalls  int
	upsertCalls  int
	updatedOwner map[string]*string
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		stores:       make(map[string]Store),
		owners:       make(map[string][2]string),
		legacy:       make(map[string]string),
		updatedOwner: make(map[string]*string),
	}
}

func (m *mockRepo) Get(ctx context.Context, id string) (*Store, error) {
	s, ok := m.stores[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *mockRepo) List(ctx context.Context, req ListStoresRequest) ([]Store, int, error) {
	var result []Store
	for _, s := range m.stores {
		if req.OwnerID != nil {
			if s.OwnerID == nil || *s.OwnerID != *req.OwnerID {
				continue
			}
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (m *mockRepo) Create(ctx context.Context, store Store) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.stores[store.ID] = store
	return nil
}

func (m *mockRepo) UpdateOwner(ctx context.Context, storeID string, ownerID *string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	s, ok := m.stores[storeID]
	if !ok {
		return ErrNotFound
	}
	s.OwnerID = ownerID
	m.stores[storeID] = s
	m.updatedOwner[storeID] = ownerID
	return nil
}

func (m *mockRepo) UpdateURL(ctx context.Context, storeID, url string) error {
	s, ok := m.stores[storeID]
	if !ok {
		return ErrNotFound
	}
	s.URL = &url
	m.stores[storeID] = s
	return nil
}

func (m *mockRepo) FirstByOwner(ctx context.Context, ownerID string) (*Store, error) {
	var candidates []Store
	for _, s := range m.stores {
		if s.OwnerID != nil && *s.OwnerID == ownerID {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNotFound
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	first := candidates[0]
	return &first, nil
}

func (m *mockRepo) UpsertOwnerProfile(ctx context.Context, identityID, name, email string) error {
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.owners[identityID] = [2]string{name, email}
	return nil
}

func (m *mockRepo) SetLegacyRole(ctx context.Context, identityID, role string) error {
	m.legacyCalls++
	if m.legacyErr != nil {
		return m.legacyErr
	}
	m.legacy[identityID] = role
	return nil
}

var _ Repository = (*mockRepo)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListAdminSeesAllStores(t *testing.T) {
	repo := newMockRepo()
	o1, o2 := "owner-1", "owner-2"
	repo.stores["s1"] = Store{ID: "s1", Name: "One", OwnerID: &o1}
	repo.stores["s2"] = Store{ID: "s2", Name: "Two", OwnerID: &o2}
	repo.stores["s3"] = Store{ID: "s3", Name: "Orphan"}

	svc := NewService(repo, testLogger())
	scope := identity.Scope{Role: identity.RoleAdmin, All: true}

	stores, total, err := svc.List(context.Background(), scope, 50, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, stores, 3)
}

func TestListOwnerSeesOnlyOwnStores(t *testing.T) {
	repo := newMockRepo()
	o1, o2 := "owner-1", "owner-2"
	repo.stores["s1"] = Store{ID: "s1", Name: "One", OwnerID: &o1}
	repo.stores["s2"] = Store{ID: "s2", Name: "Two", OwnerID: &o2}

	svc := NewService(repo, testLogger())
	scope := identity.Scope{Role: identity.RoleOwner, IdentityID: "owner-2"}

	stores, total, err := svc.List(context.Background(), scope, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "s2", stores[0].ID)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc := NewService(newMockRepo(), testLogger())

	_, err := svc.Create(context.Background(), CreateStoreRequest{Name: "No Owner"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Create(context.Background(), CreateStoreRequest{OwnerID: "owner-1"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateSlugDefaultsFromName(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())

	store, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:    "Café Crème & Co",
		OwnerID: "owner-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cafe-creme-co", store.Slug)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, "owner-1", *store.OwnerID)
	assert.NotEmpty(t, store.ID)
}

func TestCreateSyncsOwnerProfileWhenHinted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())

	_, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:       "Jane's Store",
		OwnerID:    "owner-9",
		OwnerName:  "Jane",
		OwnerEmail: "jane@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, [2]string{"Jane", "jane@x.com"}, repo.owners["owner-9"])
	assert.Equal(t, "owner", repo.legacy["owner-9"])
}

func TestCreateSkipsProfileUpsertWithoutBothHints(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())

	_, err := svc.Create(context.Background(), CreateStoreRequest{
		Name:      "Hinted Name Only",
		OwnerID:   "owner-9",
		OwnerName: "Jane",
	})
	require.NoError(t, err)
	assert.Zero(t, repo.upsertCalls)
	// Legacy role is stamped regardless.
	assert.Equal(t, "owner", repo.legacy["owner-9"])
}

func TestAssignWebsiteUpdatesExistingStore(t *testing.T) {
	repo := newMockRepo()
	owner := "owner-1"
	repo.stores["s1"] = Store{ID: "s1", Name: "Mine", OwnerID: &owner}

	svc := NewService(repo, testLogger())
	store, err := svc.AssignWebsite(context.Background(), "owner-1", "https://shop.example.com")
	require.NoError(t, err)
	assert.Equal(t, "s1", store.ID)
	require.NotNil(t, repo.stores["s1"].URL)
	assert.Equal(t, "https://shop.example.com", *repo.stores["s1"].URL)
	assert.Len(t, repo.stores, 1)
}

func TestAssignWebsiteCreatesDefaultStore(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, testLogger())

	store, err := svc.AssignWebsite(context.Background(), "123456789abc", "https://new.example.com")
	require.NoError(t, err)
	assert.Equal(t, "My Store", store.Name)
	assert.Equal(t, "store-12345678", store.Slug)
	require.NotNil(t, store.OwnerID)
	assert.Equal(t, "123456789abc", *store.OwnerID)
	assert.Len(t, repo.stores, 1)
}

func TestAssignWebsiteValidatesInput(t *testing.T) {
	svc := NewService(newMockRepo(), testLogger())

	_, err := svc.AssignWebsite(context.Background(), "", "https://x.example.com")
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.AssignWebsite(context.Background(), "owner-1", "")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}
