package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepilot/storepilot/internal/identity"
)

type mockRepo struct {
	totalsOwner  *string
	seriesOwner  *string
	seriesSince  time.Time
	series       []Bucket
	summary      Summary
	rolledUpDays []time.Time
}

func (m *mockRepo) Totals(ctx context.Context, ownerID *string) (Summary, error) {
	m.totalsOwner = ownerID
	return m.summary, nil
}

func (m *mockRepo) Series(ctx context.Context, ownerID *string, since time.Time) ([]Bucket, error) {
	m.seriesOwner = ownerID
	m.seriesSince = since
	return m.series, nil
}

func (m *mockRepo) RollupDay(ctx context.Context, day time.Time) (int64, error) {
	m.rolledUpDays = append(m.rolledUpDays, day)
	return int64(len(m.series)), nil
}

var _ RepositoryPort = (*mockRepo)(nil)

func TestSummaryAdminIsUnrestricted(t *testing.T) {
	repo := &mockRepo{summary: Summary{TotalRevenue: 1200, TotalOrders: 8, TotalStores: 3}}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), identity.Scope{Role: identity.RoleAdmin, All: true})
	require.NoError(t, err)
	assert.Nil(t, repo.totalsOwner)
	assert.Nil(t, repo.seriesOwner)
	assert.Equal(t, float64(1200), summary.TotalRevenue)
}

func TestSummaryOwnerIsRestricted(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)

	_, err := svc.Summary(context.Background(), identity.Scope{Role: identity.RoleOwner, IdentityID: "owner-1"})
	require.NoError(t, err)
	require.NotNil(t, repo.totalsOwner)
	assert.Equal(t, "owner-1", *repo.totalsOwner)
	require.NotNil(t, repo.seriesOwner)
	assert.Equal(t, "owner-1", *repo.seriesOwner)
}

func TestSummarySeriesWindowIsThirtyDays(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	fixed := time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	_, err := svc.Summary(context.Background(), identity.Scope{Role: identity.RoleAdmin, All: true})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 5, 16, 0, 0, 0, 0, time.UTC), repo.seriesSince)
}

func TestSummarySeriesNeverNil(t *testing.T) {
	repo := &mockRepo{series: nil}
	svc := NewService(repo)

	summary, err := svc.Summary(context.Background(), identity.Scope{Role: identity.RoleAdmin, All: true})
	require.NoError(t, err)
	assert.NotNil(t, summary.Series)
	assert.Empty(t, summary.Series)
}

func TestRollupDelegatesDay(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo)
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.Rollup(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, repo.rolledUpDays, 1)
	assert.Equal(t, day, repo.rolledUpDays[0])
}
