package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/storepilot/storepilot/internal/shared"
)

// ProfileRepository defines the role-profile lookups the resolver depends on.
type ProfileRepository interface {
	IsAdmin(ctx context.Context, identityID string) (bool, error)
	IsOwner(ctx context.Context, identityID string) (bool, error)
	// LegacyRole returns the role column of the base profile table, or
	// shared.ErrNotFound when no row exists.
	LegacyRole(ctx context.Context, identityID string) (Role, error)
}

// Resolver derives the canonical role of an identity. Role is not stored
// authoritatively in one place: presence in the admins table wins, then the
// owners table, then the legacy role column. Identities matching nothing
// resolve to RoleNone and are denied everywhere.
type Resolver struct {
	repo ProfileRepository
}

// NewResolver constructs a Resolver.
func NewResolver(repo ProfileRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the canonical role for the identity. A backend failure on
// any lookup is returned as an error rather than being treated as "no row":
// a query error must never advance the priority order.
func (r *Resolver) Resolve(ctx context.Context, identityID string) (Role, error) {
	if identityID == "" {
		return RoleNone, nil
	}

	isAdmin, err := r.repo.IsAdmin(ctx, identityID)
	if err != nil {
		return RoleNone, fmt.Errorf("identity: admin lookup: %w", err)
	}
	if isAdmin {
		return RoleAdmin, nil
	}

	isOwner, err := r.repo.IsOwner(ctx, identityID)
	if err != nil {
		return RoleNone, fmt.Errorf("identity: owner lookup: %w", err)
	}
	if isOwner {
		return RoleOwner, nil
	}

	role, err := r.repo.LegacyRole(ctx, identityID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return RoleNone, nil
		}
		return RoleNone, fmt.Errorf("identity: legacy role lookup: %w", err)
	}
	if !role.Valid() {
		return RoleNone, nil
	}
	return role, nil
}
