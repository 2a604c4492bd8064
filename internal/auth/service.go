// Package auth exposes session login/logout over the identity provider.
package auth

import (
	"context"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	provider identity.Provider
	resolver *identity.Resolver
}

// NewService constructs a new Service.
func NewService(provider identity.Provider, resolver *identity.Resolver) *Service {
	return &Service{provider: provider, resolver: resolver}
}

// Authenticate validates credentials and resolves the identity's role.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*identity.Identity, identity.Role, error) {
	ident, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		return nil, identity.RoleNone, shared.ErrInvalidCredentials
	}
	role, err := s.resolver.Resolve(ctx, ident.ID)
	if err != nil {
		return nil, identity.RoleNone, err
	}
	return ident, role, nil
}

// Whoami fetches the identity and resolved role for a session identity id.
func (s *Service) Whoami(ctx context.Context, identityID string) (*identity.Identity, identity.Role, error) {
	ident, err := s.provider.Get(ctx, identityID)
	if err != nil {
		return nil, identity.RoleNone, err
	}
	role, err := s.resolver.Resolve(ctx, identityID)
	if err != nil {
		return nil, identity.RoleNone, err
	}
	return ident, role, nil
}
