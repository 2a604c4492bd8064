package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("store not found")
	ErrDuplicate = errors.New("store already exists")
)

const uniqueViolation = "23505"

// Repository defines persistence operations for the stores module,
// including the owner-profile synchronization writes performed alongside
// assignment.
type Repository interface {
	Get(ctx context.Context, id string) (*Store, error)
	List(ctx context.Context, req ListStoresRequest) ([]Store, int, error)
	Create(ctx context.Context, store Store) error
	UpdateOwner(ctx context.Context, storeID string, ownerID *string) error
	UpdateURL(ctx context.Context, storeID, url string) error
	// FirstByOwner returns the owner's oldest store, or ErrNotFound.
	FirstByOwner(ctx context.Context, ownerID string) (*Store, error)
	// UpsertOwnerProfile inserts or updates the owners profile row keyed by
	// identity id. Idempotent.
	UpsertOwnerProfile(ctx context.Context, identityID, name, email string) error
	// SetLegacyRole updates the role column of the base profile table.
	SetLegacyRole(ctx context.Context, identityID, role string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const storeColumns = `id, name, slug, url, category, owner_id, created_at`

func (r *repository) Get(ctx context.Context, id string) (*Store, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	store, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return store, nil
}

func (r *repository) List(ctx context.Context, req ListStoresRequest) ([]Store, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argPos))
		args = append(args, *req.OwnerID)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM stores %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT %s FROM stores %s ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d",
		storeColumns, whereClause, argPos, argPos+1,
	)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Store
	for rows.Next() {
		store, err := scanStore(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, *store)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *repository) Create(ctx context.Context, store Store) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO stores (id, name, slug, url, category, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		store.ID, store.Name, store.Slug, store.URL, store.Category, store.OwnerID, store.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicate, store.Slug)
		}
		return err
	}
	return nil
}

func (r *repository) UpdateOwner(ctx context.Context, storeID string, ownerID *string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stores SET owner_id = $1 WHERE id = $2`, ownerID, storeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) UpdateURL(ctx context.Context, storeID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE stores SET url = $1 WHERE id = $2`, url, storeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) FirstByOwner(ctx context.Context, ownerID string) (*Store, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE owner_id = $1 ORDER BY created_at, id LIMIT 1`,
		ownerID,
	)
	store, err := scanStore(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return store, nil
}

func (r *repository) UpsertOwnerProfile(ctx context.Context, identityID, name, email string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO owners (id, name, email) VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, email = EXCLUDED.email`,
		identityID, name, email,
	)
	return err
}

func (r *repository) SetLegacyRole(ctx context.Context, identityID, role string) error {
	_, err := r.pool.Exec(ctx, `UPDATE service_users SET role = $1 WHERE id = $2`, role, identityID)
	return err
}

func scanStore(row pgx.Row) (*Store, error) {
	var (
		store    Store
		url      pgtype.Text
		category pgtype.Text
		ownerID  pgtype.Text
	)
	if err := row.Scan(&store.ID, &store.Name, &store.Slug, &url, &category, &ownerID, &store.CreatedAt); err != nil {
		return nil, err
	}
	if url.Valid {
		store.URL = &url.String
	}
	if category.Valid {
		store.Category = &category.String
	}
	if ownerID.Valid {
		store.OwnerID = &ownerID.String
	}
	return &store, nil
}

var _ Repository = (*repository)(nil)
