package stores

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// Service handles store queries and admin store creation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns the stores visible under the given scope.
func (s *Service) List(ctx context.Context, scope identity.Scope, limit, offset int) ([]Store, int, error) {
	req := ListStoresRequest{Limit: limit, Offset: offset}
	if !scope.All {
		ownerID := scope.OwnerID()
		req.OwnerID = &ownerID
	}
	return s.repo.List(ctx, req)
}

// Get fetches a single store.
func (s *Service) Get(ctx context.Context, id string) (*Store, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a new store for the given owner and synchronizes the
// owner's profile rows the same way assignment does.
func (s *Service) Create(ctx context.Context, req CreateStoreRequest) (*Store, error) {
	if req.Name == "" || req.OwnerID == "" {
		return nil, fmt.Errorf("%w: name and owner are required", httpx.ErrValidation)
	}

	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	store := Store{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Slug:      slug,
		CreatedAt: time.Now().UTC(),
	}
	if req.URL != "" {
		store.URL = &req.URL
	}
	if req.Category != "" {
		store.Category = &req.Category
	}
	ownerID := req.OwnerID
	store.OwnerID = &ownerID

	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}

	syncOwnerProfile(ctx, s.repo, s.logger, req.OwnerID, req.OwnerName, req.OwnerEmail)

	return &store, nil
}

// AssignWebsite points the user's store at a URL. When the user owns no
// store yet, a default-named one is created.
func (s *Service) AssignWebsite(ctx context.Context, userID, url string) (*Store, error) {
	if userID == "" || url == "" {
		return nil, fmt.Errorf("%w: user id and url are required", httpx.ErrValidation)
	}

	existing, err := s.repo.FirstByOwner(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := s.repo.UpdateURL(ctx, existing.ID, url); err != nil {
			return nil, err
		}
		existing.URL = &url
		return existing, nil
	}

	slug := "store-" + userID
	if len(userID) >= 8 {
		slug = "store-" + userID[:8]
	}
	store := Store{
		ID:        uuid.NewString(),
		Name:      "My Store",
		Slug:      slug,
		URL:       &url,
		OwnerID:   &userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return &store, nil
}

// syncOwnerProfile performs the best-effort profile synchronization that
// follows a successful store write: upsert the owners row when a name/email
// hint is supplied, then stamp the legacy role column. Failures here are
// logged and swallowed; the primary write is never rolled back.
func syncOwnerProfile(ctx context.Context, repo Repository, logger *slog.Logger, identityID, name, email string) {
	if name != "" && email != "" {
		if err := repo.UpsertOwnerProfile(ctx, identityID, name, email); err != nil && logger != nil {
			logger.Error("partial sync: upsert owner profile",
				slog.String("identity_id", identityID), slog.Any("error", err))
		}
	}
	if err := repo.SetLegacyRole(ctx, identityID, string(identity.RoleOwner)); err != nil && logger != nil {
		logger.Error("partial sync: set legacy role",
			slog.String("identity_id", identityID), slog.Any("error", err))
	}
}
