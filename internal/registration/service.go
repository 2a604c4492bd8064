package registration

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/storepilot/storepilot/internal/identity"
	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// Service gates account creation behind the shared invite code. Anyone who
// knows the code can self-register as an owner; the code is a single shared
// secret, not per-invitation.
type Service struct {
	provider identity.Provider
	code     string
}

// NewService builds a Service instance.
func NewService(provider identity.Provider, code string) *Service {
	return &Service{provider: provider, code: code}
}

// Register validates the invite code and delegates identity creation to the
// provider with a default role claim of owner.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*identity.Identity, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: all fields including registration code are required", httpx.ErrValidation)
	}
	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(s.code)) != 1 {
		return nil, fmt.Errorf("%w: invalid registration code", httpx.ErrForbidden)
	}

	ident, err := s.provider.SignUp(ctx, identity.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     identity.RoleOwner,
	})
	if err != nil {
		if errors.Is(err, identity.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: %s", httpx.ErrValidation, err)
		}
		return nil, err
	}
	return ident, nil
}
