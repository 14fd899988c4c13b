package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/analytics"
	"github.com/spec-kit/interaction-analytics/internal/config"
	"github.com/spec-kit/interaction-analytics/internal/domain"
	"github.com/spec-kit/interaction-analytics/internal/events"
	"github.com/spec-kit/interaction-analytics/internal/observability"
)

type fakeRepo struct {
	events   []domain.Event
	inserted []domain.Event
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]domain.Event, error) {
	return f.events, nil
}

func (f *fakeRepo) InsertBatch(ctx context.Context, records []domain.Event) (int, error) {
	f.inserted = append(f.inserted, records...)
	return len(records), nil
}

func testScoring() config.ScoringConfig {
	return config.ScoringConfig{
		Weights: map[domain.ProblemTag]float64{
			domain.TagTechIssue:  0.2,
			domain.TagUnresolved: 0.3,
		},
		ThresholdLower: 5,
		ThresholdUpper: 30,
		OverlapTopN:    5,
		OverlapLower:   20,
		OverlapUpper:   60,
	}
}

func mustDate(s string) domain.Event {
	d, ok := analytics.ParseDay(s)
	if !ok {
		panic("bad date " + s)
	}
	return domain.Event{CalendarDate: d}
}

func newTestService(repo *fakeRepo) *AnalyticsService {
	return NewAnalyticsService(AnalyticsDependencies{
		Repo:       repo,
		Engine:     analytics.NewEngine(analytics.NewCache()),
		Dispatcher: events.NewInMemoryDispatcher(),
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
		Scoring:    testScoring(),
	})
}

func TestServiceRequiresSnapshot(t *testing.T) {
	svc := newTestService(&fakeRepo{})
	_, err := svc.Funnel(analytics.FilterSpec{})
	assert.Error(t, err)
	assert.Empty(t, svc.SnapshotVersion())
}

func TestServiceRefreshAssignsFreshVersion(t *testing.T) {
	repo := &fakeRepo{events: []domain.Event{mustDate("2024-01-01")}}
	svc := newTestService(repo)

	require.NoError(t, svc.Refresh(context.Background()))
	first := svc.SnapshotVersion()
	require.NotEmpty(t, first)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.NotEqual(t, first, svc.SnapshotVersion())
}

func TestServiceRefreshNotifiesSubscribers(t *testing.T) {
	repo := &fakeRepo{events: []domain.Event{mustDate("2024-01-01")}}
	dispatcher := events.NewInMemoryDispatcher()

	var got events.SnapshotRefreshedPayload
	dispatcher.Subscribe(events.EventSnapshotRefreshed, func(ctx context.Context, e events.Event) error {
		got = e.Payload.(events.SnapshotRefreshedPayload)
		return nil
	})

	svc := NewAnalyticsService(AnalyticsDependencies{
		Repo:       repo,
		Engine:     analytics.NewEngine(analytics.NewCache()),
		Dispatcher: dispatcher,
		Metrics:    observability.NewMetrics(),
		Logger:     zap.NewNop(),
		Scoring:    testScoring(),
	})
	require.NoError(t, svc.Refresh(context.Background()))
	assert.Equal(t, svc.SnapshotVersion(), got.Version)
	assert.Equal(t, 1, got.EventCount)
}

func TestServiceFunnelMapsStatuses(t *testing.T) {
	received := mustDate("2024-01-01")
	received.Status = "received"
	resolved := mustDate("2024-01-01")
	resolved.Status = "RESOLVED" // mapping is case-insensitive
	unknown := mustDate("2024-01-01")
	unknown.Status = "weird"

	repo := &fakeRepo{events: []domain.Event{received, resolved, unknown}}
	svc := newTestService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	rows, err := svc.Funnel(analytics.FilterSpec{})
	require.NoError(t, err)
	require.Len(t, rows, len(domain.FunnelStages))
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, 1, rows[3].Count)
}

func TestServiceOverlapUsesConfiguredDefaults(t *testing.T) {
	e := mustDate("2024-01-01")
	e.ProductGroup = domain.ProductGroupCards
	e.Tags = domain.NewTagSet(domain.TagTechIssue, domain.TagChurnRisk)

	repo := &fakeRepo{events: []domain.Event{e}}
	svc := newTestService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	result, err := svc.Overlap(analytics.FilterSpec{}, "", domain.GranularityDay, 0)
	require.NoError(t, err)
	require.Len(t, result.Snapshot, 1)
	assert.Equal(t, domain.ZoneRed, result.Snapshot[0].Zone) // 100% ≥ upper 60
}

func TestServiceOverlapRejectsUnknownDimension(t *testing.T) {
	repo := &fakeRepo{events: []domain.Event{mustDate("2024-01-01")}}
	svc := newTestService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.Overlap(analytics.FilterSpec{}, "galaxy", domain.GranularityDay, 0)
	assert.Error(t, err)
}

func TestServiceBubbleMatrixAppliesDefaultWeights(t *testing.T) {
	e := mustDate("2024-01-01")
	e.ProductGroup = domain.ProductGroupLoans
	e.Tags = domain.NewTagSet(domain.TagUnresolved)

	repo := &fakeRepo{events: []domain.Event{e}}
	svc := newTestService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	points, err := svc.BubbleMatrix(analytics.FilterSpec{}, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	// Share 100 at weight 0.3 with default thresholds {5, 30}.
	assert.InDelta(t, 30.0, points[0].Score, 1e-9)
	assert.Equal(t, domain.ZoneRed, points[0].Zone)
}

func TestServiceHeatmapRejectsUnknownDimension(t *testing.T) {
	repo := &fakeRepo{events: []domain.Event{mustDate("2024-01-01")}}
	svc := newTestService(repo)
	require.NoError(t, svc.Refresh(context.Background()))

	_, err := svc.Heatmap(analytics.FilterSpec{}, "hour", "starsign")
	assert.Error(t, err)
}

func TestServiceIngestPersistsRecords(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(repo)

	record := mustDate("2024-02-01")
	record.ID = "r1"
	accepted, err := svc.Ingest(context.Background(), []domain.Event{record}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, accepted)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, "r1", repo.inserted[0].ID)
}
