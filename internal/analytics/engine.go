package analytics

import (
	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// Snapshot is an immutable in-memory event collection. Version identifies
// the collection for memoization; two snapshots with the same version are
// assumed identical.
type Snapshot struct {
	Version string
	Events  []domain.Event
}

// Engine runs the aggregation pipelines over a snapshot, memoizing repeated
// calls with identical (snapshot version, filter, config). It holds no other
// state and is safe for concurrent use.
type Engine struct {
	cache *Cache
}

// NewEngine builds an engine around the given cache. The cache must not be
// nil; construct an isolated one per engine.
func NewEngine(cache *Cache) *Engine {
	return &Engine{cache: cache}
}

// ClearCache drops all memoized results, typically after a snapshot refresh.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// TimeSeries builds a bucketed metric series over the filtered snapshot.
// metricID must uniquely identify the metric definition for memoization.
func (e *Engine) TimeSeries(snap Snapshot, spec FilterSpec, metricID string, metric Metric, g domain.Granularity) []MetricPoint {
	key := e.cache.Key("timeseries", snap.Version, spec.Fingerprint(), metricID, string(g))
	if v, ok := e.cache.Get(key); ok {
		return v.([]MetricPoint)
	}
	series := BuildTimeSeries(Filter(snap.Events, spec), metric, g)
	e.cache.Put(key, series)
	return series
}

// Funnel builds per-stage counts over the filtered snapshot. classifierID
// must uniquely identify the classifier for memoization.
func (e *Engine) Funnel(snap Snapshot, spec FilterSpec, classifierID string, classify StageClassifier) []FunnelRow {
	key := e.cache.Key("funnel", snap.Version, spec.Fingerprint(), classifierID)
	if v, ok := e.cache.Get(key); ok {
		return v.([]FunnelRow)
	}
	rows := BuildFunnel(Filter(snap.Events, spec), domain.FunnelStages, classify)
	e.cache.Put(key, rows)
	return rows
}

// FlowGraph builds the channel→process→status graph over the filtered
// snapshot.
func (e *Engine) FlowGraph(snap Snapshot, spec FilterSpec) FlowGraph {
	key := e.cache.Key("flowgraph", snap.Version, spec.Fingerprint())
	if v, ok := e.cache.Get(key); ok {
		return v.(FlowGraph)
	}
	graph := BuildFlowGraph(Filter(snap.Events, spec))
	e.cache.Put(key, graph)
	return graph
}

// Heatmap builds the X×Y count matrix over the filtered snapshot.
func (e *Engine) Heatmap(snap Snapshot, spec FilterSpec, x, y DimensionSelector) HeatmapMatrix {
	key := e.cache.Key("heatmap", snap.Version, spec.Fingerprint(), x.Name, y.Name)
	if v, ok := e.cache.Get(key); ok {
		return v.(HeatmapMatrix)
	}
	matrix := BuildHeatmap(Filter(snap.Events, spec), x, y)
	e.cache.Put(key, matrix)
	return matrix
}

// Overlap builds per-entity overlap series and the ranked snapshot view.
// Configuration-shape violations fail fast before any aggregation.
func (e *Engine) Overlap(snap Snapshot, spec FilterSpec, dim TargetDimension, cfg OverlapConfig) (OverlapResult, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return OverlapResult{}, err
	}
	if err := validateTopN(cfg.TopN); err != nil {
		return OverlapResult{}, err
	}
	key := e.cache.Key("overlap", snap.Version, spec.Fingerprint(), dim.Name, string(cfg.Granularity), cfg.TopN, cfg.Thresholds)
	if v, ok := e.cache.Get(key); ok {
		return v.(OverlapResult), nil
	}
	result, err := BuildOverlap(Filter(snap.Events, spec), dim, cfg)
	if err != nil {
		return OverlapResult{}, err
	}
	e.cache.Put(key, result)
	return result, nil
}

// BubbleMatrix builds dissatisfaction-score points over the filtered
// snapshot. Configuration-shape violations fail fast before any aggregation.
func (e *Engine) BubbleMatrix(snap Snapshot, spec FilterSpec, cfg BubbleConfig) ([]BubblePoint, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	granularity := ""
	if cfg.Granularity != nil {
		granularity = string(*cfg.Granularity)
	}
	key := e.cache.Key("bubbles", snap.Version, spec.Fingerprint(), cfg.Weights, cfg.Thresholds, granularity)
	if v, ok := e.cache.Get(key); ok {
		return v.([]BubblePoint), nil
	}
	points, err := BuildBubbleMatrix(Filter(snap.Events, spec), cfg)
	if err != nil {
		return nil, err
	}
	e.cache.Put(key, points)
	return points, nil
}
