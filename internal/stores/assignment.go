package stores

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/storepilot/storepilot/internal/platform/httpx"
)

// AssignmentService mutates store ownership and keeps the owner profile
// tables in sync. The sequence is deliberately non-atomic: the owner_id
// update is the primary write and aborts the call on failure; the two
// profile-sync writes that follow are best-effort, logged on failure, and
// never rolled back. Concurrent assigns for the same store race
// last-write-wins at the database with no additional locking.
type AssignmentService struct {
	repo   Repository
	logger *slog.Logger
}

// NewAssignmentService builds an AssignmentService.
func NewAssignmentService(repo Repository, logger *slog.Logger) *AssignmentService {
	return &AssignmentService{repo: repo, logger: logger}
}

// Assign sets the store's owner and synchronizes the target's profile rows.
// Idempotent for repeated calls with the same arguments.
func (s *AssignmentService) Assign(ctx context.Context, req AssignStoreRequest) error {
	if req.StoreID == "" {
		return fmt.Errorf("%w: store id is required", httpx.ErrValidation)
	}
	if req.UserID == "" {
		return fmt.Errorf("%w: user id is required for assignment", httpx.ErrValidation)
	}

	ownerID := req.UserID
	if err := s.repo.UpdateOwner(ctx, req.StoreID, &ownerID); err != nil {
		return err
	}

	syncOwnerProfile(ctx, s.repo, s.logger, req.UserID, req.UserName, req.UserEmail)

	return nil
}

// Unassign clears the store's owner. The store row itself is kept.
func (s *AssignmentService) Unassign(ctx context.Context, storeID string) error {
	if storeID == "" {
		return fmt.Errorf("%w: store id is required", httpx.ErrValidation)
	}
	return s.repo.UpdateOwner(ctx, storeID, nil)
}
