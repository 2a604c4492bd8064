package stats

import (
	"context"
	"time"

	"github.com/storepilot/storepilot/internal/identity"
)

// DefaultSeriesWindow is how far back the dashboard series reaches.
const DefaultSeriesWindow = 30 * 24 * time.Hour

// Service handles scoped dashboard aggregates.
type Service struct {
	repo RepositoryPort
	now  func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary returns the headline numbers and the daily series visible under
// the given scope.
func (s *Service) Summary(ctx context.Context, scope identity.Scope) (*Summary, error) {
	var ownerID *string
	if !scope.All {
		id := scope.OwnerID()
		ownerID = &id
	}

	summary, err := s.repo.Totals(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	since := s.now().UTC().Add(-DefaultSeriesWindow).Truncate(24 * time.Hour)
	series, err := s.repo.Series(ctx, ownerID, since)
	if err != nil {
		return nil, err
	}
	if series == nil {
		series = []Bucket{}
	}
	summary.Series = series
	return &summary, nil
}

// Rollup accumulates the given day's orders into store_stats.
func (s *Service) Rollup(ctx context.Context, day time.Time) (int64, error) {
	return s.repo.RollupDay(ctx, day)
}
