package identity

import (
	"fmt"

	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// Scope is the row-visibility filter derived from a resolved role. It is the
// single predicate every list repository applies: admins see everything,
// owners see rows reachable from their own stores, everyone else is denied
// before a query is issued.
type Scope struct {
	Role       Role
	IdentityID string
	// All grants unrestricted table visibility.
	All bool
}

// ScopeFor computes the access scope for a role/identity pair. Clients have
// no dashboard access, and an unresolved role denies outright rather than
// falling back to any default.
func ScopeFor(role Role, identityID string) (Scope, error) {
	switch role {
	case RoleAdmin:
		return Scope{Role: role, IdentityID: identityID, All: true}, nil
	case RoleOwner:
		if identityID == "" {
			return Scope{}, fmt.Errorf("%w: missing identity", httpx.ErrUnauthorized)
		}
		return Scope{Role: role, IdentityID: identityID}, nil
	case RoleClient:
		return Scope{}, fmt.Errorf("%w: clients have no dashboard access", httpx.ErrForbidden)
	default:
		return Scope{}, httpx.ErrUnauthorized
	}
}

// OwnerID returns the identity the scope restricts to, empty for admins.
func (s Scope) OwnerID() string {
	if s.All {
		return ""
	}
	return s.IdentityID
}
