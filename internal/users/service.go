package users

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/storepilot/storepilot/internal/identity"
)

// Service assembles the user directory. Admins get every dashboard user with
// a merged role view; owners get the client accounts of their own stores.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Directory returns the users visible under the given scope.
func (s *Service) Directory(ctx context.Context, scope identity.Scope) ([]DirectoryUser, error) {
	if scope.All {
		return s.adminDirectory(ctx)
	}
	return s.ownerClients(ctx, scope.OwnerID())
}

// adminDirectory fans out to the role tables in parallel and merges the
// results per base user. Table presence wins over the stored legacy role,
// in the same priority order the resolver applies.
func (s *Service) adminDirectory(ctx context.Context) ([]DirectoryUser, error) {
	var (
		base    []BaseUser
		admins  []ProfileRef
		owners  []ProfileRef
		clients []ClientAccount
		stores  []StoreRef
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { base, err = s.repo.ListBaseUsers(gctx); return })
	g.Go(func() (err error) { admins, err = s.repo.ListAdmins(gctx); return })
	g.Go(func() (err error) { owners, err = s.repo.ListOwners(gctx); return })
	g.Go(func() (err error) { clients, err = s.repo.ListClients(gctx); return })
	g.Go(func() (err error) { stores, err = s.repo.ListStoreRefs(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	adminsByID := make(map[string]ProfileRef, len(admins))
	for _, a := range admins {
		adminsByID[a.ID] = a
	}
	ownersByID := make(map[string]ProfileRef, len(owners))
	for _, o := range owners {
		ownersByID[o.ID] = o
	}
	clientsByID := make(map[string]ClientAccount, len(clients))
	for _, c := range clients {
		clientsByID[c.ID] = c
	}
	storesByID := make(map[string]StoreRef, len(stores))
	storesByOwner := make(map[string][]StoreRef)
	for _, st := range stores {
		storesByID[st.ID] = st
		if st.OwnerID != nil {
			storesByOwner[*st.OwnerID] = append(storesByOwner[*st.OwnerID], st)
		}
	}

	result := make([]DirectoryUser, 0, len(base))
	for _, u := range base {
		du := DirectoryUser{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			Stores:    []StoreRef{},
		}
		switch {
		case hasProfile(adminsByID, u.ID):
			du.Role = identity.RoleAdmin
			applyProfile(&du, adminsByID[u.ID])
		case hasProfile(ownersByID, u.ID):
			du.Role = identity.RoleOwner
			applyProfile(&du, ownersByID[u.ID])
			du.Stores = append(du.Stores, storesByOwner[u.ID]...)
		default:
			if c, ok := clientsByID[u.ID]; ok {
				du.Role = identity.RoleClient
				if c.Name != "" {
					du.Name = c.Name
				}
				if c.Email != "" {
					du.Email = c.Email
				}
				if c.StoreID != nil {
					if st, ok := storesByID[*c.StoreID]; ok {
						du.Stores = append(du.Stores, st)
					}
				}
			}
		}
		result = append(result, du)
	}
	return result, nil
}

// ownerClients returns the client accounts of the owner's stores as
// directory entries. An owner with no stores has no visible clients.
func (s *Service) ownerClients(ctx context.Context, ownerID string) ([]DirectoryUser, error) {
	storeIDs, err := s.repo.ListStoreIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(storeIDs) == 0 {
		return []DirectoryUser{}, nil
	}

	var stores []StoreRef
	var clients []ClientAccount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { stores, err = s.repo.ListStoreRefs(gctx); return })
	g.Go(func() (err error) { clients, err = s.repo.ListClientsByStores(gctx, storeIDs); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	storesByID := make(map[string]StoreRef, len(stores))
	for _, st := range stores {
		storesByID[st.ID] = st
	}

	result := make([]DirectoryUser, 0, len(clients))
	for _, c := range clients {
		du := DirectoryUser{
			ID:     c.ID,
			Email:  c.Email,
			Name:   c.Name,
			Role:   identity.RoleClient,
			Stores: []StoreRef{},
		}
		if c.StoreID != nil {
			if st, ok := storesByID[*c.StoreID]; ok {
				du.Stores = append(du.Stores, st)
			}
		}
		result = append(result, du)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func hasProfile(m map[string]ProfileRef, id string) bool {
	_, ok := m[id]
	return ok
}

func applyProfile(du *DirectoryUser, p ProfileRef) {
	if p.Name != "" {
		du.Name = p.Name
	}
	if p.Email != "" {
		du.Email = p.Email
	}
}
