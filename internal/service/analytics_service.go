package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/interaction-analytics/internal/analytics"
	"github.com/spec-kit/interaction-analytics/internal/config"
	"github.com/spec-kit/interaction-analytics/internal/domain"
	"github.com/spec-kit/interaction-analytics/internal/events"
	"github.com/spec-kit/interaction-analytics/internal/observability"
	"github.com/spec-kit/interaction-analytics/internal/repository"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// defaultStageMapping resolves an interaction status onto the funnel stage
// it has reached. Statuses outside the mapping stay out of the funnel.
var defaultStageMapping = map[string]domain.FunnelStage{
	"received":    domain.StageIntake,
	"routed":      domain.StageRouting,
	"in_progress": domain.StageWork,
	"resolved":    domain.StageResolve,
	"closed":      domain.StageResolve,
}

// AnalyticsService owns the in-memory interaction snapshot and runs the
// aggregation pipelines over it.
type AnalyticsService struct {
	repo       repository.InteractionRepository
	engine     *analytics.Engine
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
	scoring    config.ScoringConfig

	mu       sync.RWMutex
	snapshot *analytics.Snapshot
	loadedAt time.Time
}

// AnalyticsDependencies bundles collaborators for the service.
type AnalyticsDependencies struct {
	Repo       repository.InteractionRepository
	Engine     *analytics.Engine
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
	Scoring    config.ScoringConfig
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	return &AnalyticsService{
		repo:       deps.Repo,
		engine:     deps.Engine,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		scoring:    deps.Scoring,
	}
}

// Refresh reloads the interaction snapshot from storage, assigns it a fresh
// version, and notifies subscribers.
func (s *AnalyticsService) Refresh(ctx context.Context) error {
	loaded, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	snap := &analytics.Snapshot{Version: uuid.NewString(), Events: loaded}
	now := time.Now().UTC()

	s.mu.Lock()
	s.snapshot = snap
	s.loadedAt = now
	s.mu.Unlock()

	s.engine.ClearCache()
	s.metrics.RecordSnapshot(len(loaded), now)
	s.logger.Info("snapshot refreshed",
		zap.String("version", snap.Version),
		zap.Int("events", len(loaded)),
	)

	return s.dispatcher.Publish(ctx, events.NewEvent(events.EventSnapshotRefreshed, events.SnapshotRefreshedPayload{
		Version:    snap.Version,
		EventCount: len(loaded),
		LoadedAt:   now,
	}))
}

// SnapshotVersion returns the current snapshot version, empty before the
// first refresh.
func (s *AnalyticsService) SnapshotVersion() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return ""
	}
	return s.snapshot.Version
}

func (s *AnalyticsService) currentSnapshot() (analytics.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return analytics.Snapshot{}, apperrors.NewConflict("no snapshot loaded yet", nil)
	}
	return *s.snapshot, nil
}

// Ingest persists already-validated records and notifies subscribers. The
// snapshot is not updated until the next refresh.
func (s *AnalyticsService) Ingest(ctx context.Context, records []domain.Event, dropped int) (int, error) {
	accepted, err := s.repo.InsertBatch(ctx, records)
	if err != nil {
		return 0, err
	}
	s.logger.Info("ingested interaction records",
		zap.Int("accepted", accepted),
		zap.Int("dropped", dropped),
	)
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventRecordsIngested, events.RecordsIngestedPayload{
		Accepted: accepted,
		Dropped:  dropped,
	}))
	return accepted, nil
}

// TagShareSeries builds the bucketed share-of-events series for one tag.
func (s *AnalyticsService) TagShareSeries(spec analytics.FilterSpec, tag domain.ProblemTag, g domain.Granularity) ([]analytics.MetricPoint, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}
	metricID := "tag_share:" + string(tag)
	return s.engine.TimeSeries(snap, spec, metricID, analytics.TagShareMetric(tag), g), nil
}

// OverlapSeriesOverall builds the bucketed multi-tag overlap-rate series
// over the whole filtered set.
func (s *AnalyticsService) OverlapSeriesOverall(spec analytics.FilterSpec, g domain.Granularity) ([]analytics.MetricPoint, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}
	return s.engine.TimeSeries(snap, spec, "overlap_rate", analytics.OverlapRateMetric(), g), nil
}

// Funnel builds per-stage counts using the status→stage mapping.
func (s *AnalyticsService) Funnel(spec analytics.FilterSpec) ([]analytics.FunnelRow, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}
	classifier := func(e domain.Event) (domain.FunnelStage, bool) {
		stage, ok := defaultStageMapping[strings.ToLower(e.Status)]
		return stage, ok
	}
	return s.engine.Funnel(snap, spec, "status_mapping_v1", classifier), nil
}

// FlowGraph builds the channel→process→status graph.
func (s *AnalyticsService) FlowGraph(spec analytics.FilterSpec) (analytics.FlowGraph, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return analytics.FlowGraph{}, err
	}
	return s.engine.FlowGraph(snap, spec), nil
}

// Heatmap builds a count matrix for the named dimensions.
func (s *AnalyticsService) Heatmap(spec analytics.FilterSpec, xDim, yDim string) (analytics.HeatmapMatrix, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return analytics.HeatmapMatrix{}, err
	}
	x, err := selectorByName(xDim)
	if err != nil {
		return analytics.HeatmapMatrix{}, err
	}
	y, err := selectorByName(yDim)
	if err != nil {
		return analytics.HeatmapMatrix{}, err
	}
	return s.engine.Heatmap(snap, spec, x, y), nil
}

// Overlap builds per-entity overlap analytics for the named dimension,
// falling back to configured defaults for ranking parameters.
func (s *AnalyticsService) Overlap(spec analytics.FilterSpec, dimension string, g domain.Granularity, topN int) (analytics.OverlapResult, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return analytics.OverlapResult{}, err
	}
	dim, err := overlapDimensionByName(dimension)
	if err != nil {
		return analytics.OverlapResult{}, err
	}
	if topN == 0 {
		topN = s.scoring.OverlapTopN
	}
	return s.engine.Overlap(snap, spec, dim, analytics.OverlapConfig{
		Granularity: g,
		TopN:        topN,
		Thresholds:  analytics.ZoneThresholds{Lower: s.scoring.OverlapLower, Upper: s.scoring.OverlapUpper},
	})
}

// BubbleMatrix builds dissatisfaction-score points, with request-level
// overrides for weights, thresholds and periodization.
func (s *AnalyticsService) BubbleMatrix(spec analytics.FilterSpec, weights analytics.Weights, thresholds *analytics.ZoneThresholds, g *domain.Granularity) ([]analytics.BubblePoint, error) {
	snap, err := s.currentSnapshot()
	if err != nil {
		return nil, err
	}
	if weights == nil {
		weights = make(analytics.Weights, len(s.scoring.Weights))
		for tag, w := range s.scoring.Weights {
			weights[tag] = w
		}
	}
	th := analytics.ZoneThresholds{Lower: s.scoring.ThresholdLower, Upper: s.scoring.ThresholdUpper}
	if thresholds != nil {
		th = *thresholds
	}
	return s.engine.BubbleMatrix(snap, spec, analytics.BubbleConfig{
		Weights:     weights,
		Thresholds:  th,
		Granularity: g,
	})
}

func selectorByName(name string) (analytics.DimensionSelector, error) {
	switch name {
	case "hour":
		return analytics.HourSelector(), nil
	case "channel":
		return analytics.ChannelSelector(), nil
	case "weekday":
		return analytics.WeekdaySelector(), nil
	case "product_group":
		return analytics.ProductGroupSelector(), nil
	}
	return analytics.DimensionSelector{}, apperrors.NewValidationError("unknown heatmap dimension", map[string]any{"dimension": name})
}

func overlapDimensionByName(name string) (analytics.TargetDimension, error) {
	switch name {
	case "product_group", "":
		return analytics.ByProductGroup(), nil
	case "channel":
		return analytics.ByChannel(), nil
	case "tag":
		return analytics.ByTag(), nil
	}
	return analytics.TargetDimension{}, apperrors.NewValidationError("unknown overlap dimension", map[string]any{"dimension": name})
}
