package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storepilot/storepilot/internal/identity"
)

// RepositoryPort defines data access for the user directory.
type RepositoryPort interface {
	ListBaseUsers(ctx context.Context) ([]BaseUser, error)
	ListAdmins(ctx context.Context) ([]ProfileRef, error)
	ListOwners(ctx context.Context) ([]ProfileRef, error)
	ListClients(ctx context.Context) ([]ClientAccount, error)
	ListStoreRefs(ctx context.Context) ([]StoreRef, error)
	ListStoreIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	ListClientsByStores(ctx context.Context, storeIDs []string) ([]ClientAccount, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListBaseUsers returns all base profile rows.
func (r *Repository) ListBaseUsers(ctx context.Context) ([]BaseUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, name, role, created_at FROM service_users ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []BaseUser
	for rows.Next() {
		var u BaseUser
		var role string
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = identity.Role(role)
		result = append(result, u)
	}
	return result, rows.Err()
}

// ListAdmins returns all admin profile rows.
func (r *Repository) ListAdmins(ctx context.Context) ([]ProfileRef, error) {
	return r.listProfiles(ctx, `SELECT id, email, name FROM admins ORDER BY id`)
}

// ListOwners returns all owner profile rows.
func (r *Repository) ListOwners(ctx context.Context) ([]ProfileRef, error) {
	return r.listProfiles(ctx, `SELECT id, email, name FROM owners ORDER BY id`)
}

// ListClients returns all client accounts.
func (r *Repository) ListClients(ctx context.Context) ([]ClientAccount, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, name, store_id FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

// ListStoreRefs returns slim projections of every store.
func (r *Repository) ListStoreRefs(ctx context.Context) ([]StoreRef, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, owner_id FROM stores ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []StoreRef
	for rows.Next() {
		var s StoreRef
		var ownerID pgtype.Text
		if err := rows.Scan(&s.ID, &s.Name, &ownerID); err != nil {
			return nil, err
		}
		if ownerID.Valid {
			s.OwnerID = &ownerID.String
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListStoreIDsByOwner returns the ids of the owner's stores.
func (r *Repository) ListStoreIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM stores WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListClientsByStores returns the client accounts of the given stores.
func (r *Repository) ListClientsByStores(ctx context.Context, storeIDs []string) ([]ClientAccount, error) {
	if len(storeIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, name, store_id FROM clients WHERE store_id = ANY($1) ORDER BY id`, storeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

func (r *Repository) listProfiles(ctx context.Context, query string) ([]ProfileRef, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ProfileRef
	for rows.Next() {
		var p ProfileRef
		if err := rows.Scan(&p.ID, &p.Email, &p.Name); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanClients(rows pgx.Rows) ([]ClientAccount, error) {
	var result []ClientAccount
	for rows.Next() {
		var c ClientAccount
		var storeID pgtype.Text
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &storeID); err != nil {
			return nil, err
		}
		if storeID.Valid {
			c.StoreID = &storeID.String
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

var _ RepositoryPort = (*Repository)(nil)
