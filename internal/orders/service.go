package orders

import (
	"context"

	"github.com/storepilot/storepilot/internal/identity"
)

// Service handles scoped order queries.
type Service struct {
	repo Repository
}

// NewService builds a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the orders visible under the given scope, optionally filtered
// by status. For owners, membership in the result set is exactly the orders
// whose store belongs to them.
func (s *Service) List(ctx context.Context, scope identity.Scope, status *OrderStatus, limit, offset int) ([]OrderWithStore, int, error) {
	req := ListOrdersRequest{Status: status, Limit: limit, Offset: offset}
	if !scope.All {
		ownerID := scope.OwnerID()
		req.OwnerID = &ownerID
	}
	return s.repo.List(ctx, req)
}
