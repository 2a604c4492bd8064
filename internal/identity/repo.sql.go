package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storepilot/storepilot/internal/shared"
)

// PGProfileRepository implements ProfileRepository using PostgreSQL.
type PGProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository constructs a PostgreSQL profile repository.
func NewProfileRepository(pool *pgxpool.Pool) *PGProfileRepository {
	return &PGProfileRepository{pool: pool}
}

// IsAdmin reports whether the identity has an admins profile row.
func (r *PGProfileRepository) IsAdmin(ctx context.Context, identityID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM admins WHERE id = $1`, identityID)
}

// IsOwner reports whether the identity has an owners profile row.
func (r *PGProfileRepository) IsOwner(ctx context.Context, identityID string) (bool, error) {
	return r.exists(ctx, `SELECT 1 FROM owners WHERE id = $1`, identityID)
}

// LegacyRole returns the role column of the base profile table.
func (r *PGProfileRepository) LegacyRole(ctx context.Context, identityID string) (Role, error) {
	var role string
	err := r.pool.QueryRow(ctx, `SELECT role FROM service_users WHERE id = $1`, identityID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RoleNone, shared.ErrNotFound
		}
		return RoleNone, err
	}
	return Role(role), nil
}

func (r *PGProfileRepository) exists(ctx context.Context, query, identityID string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, query, identityID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ ProfileRepository = (*PGProfileRepository)(nil)
