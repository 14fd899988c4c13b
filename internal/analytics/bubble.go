package analytics

import (
	"sort"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// BubbleConfig controls the dissatisfaction-score pipeline. A nil
// Granularity produces one point per product group over the whole filtered
// set; otherwise one point per (product group, bucket) pair with support.
type BubbleConfig struct {
	Weights     Weights
	Thresholds  ZoneThresholds
	Granularity *domain.Granularity
}

// BubblePoint carries an entity's composite score, its zone, the per-tag
// shares behind the score, and the supporting event count.
type BubblePoint struct {
	ID     string      `json:"id"`
	Label  string      `json:"label"`
	Period string      `json:"period,omitempty"`
	Score  float64     `json:"score"`
	Zone   domain.Zone `json:"zone"`
	Shares Shares      `json:"shares"`
	Weight int         `json:"weight"`
}

// BuildBubbleMatrix computes per-entity tag shares, the weighted
// dissatisfaction score, and the zone. Output is sparse: entity-periods
// without supporting events produce no point, because the weight encodes
// sample size. Shares and scores are rounded to one decimal; classification
// uses the rounded score so the emitted value and zone agree.
func BuildBubbleMatrix(events []domain.Event, cfg BubbleConfig) ([]BubblePoint, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}

	type groupKey struct {
		entity string
		period string
	}
	groups := make(map[groupKey][]domain.Event)
	for _, e := range events {
		key := groupKey{entity: string(e.ProductGroup)}
		if cfg.Granularity != nil {
			key.period = BucketKey(e.CalendarDate, *cfg.Granularity)
		}
		groups[key] = append(groups[key], e)
	}

	keys := make([]groupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].entity != keys[j].entity {
			return keys[i].entity < keys[j].entity
		}
		return keys[i].period < keys[j].period
	})

	points := make([]BubblePoint, 0, len(keys))
	for _, key := range keys {
		members := groups[key]
		shares := make(Shares, len(cfg.Weights))
		for tag := range cfg.Weights {
			carrying := 0
			for _, e := range members {
				if e.Tags.Has(tag) {
					carrying++
				}
			}
			shares[tag] = Round1(100 * float64(carrying) / float64(len(members)))
		}
		score := Round1(Score(shares, cfg.Weights))
		points = append(points, BubblePoint{
			ID:     key.entity,
			Label:  key.entity,
			Period: key.period,
			Score:  score,
			Zone:   Classify(score, cfg.Thresholds),
			Shares: shares,
			Weight: len(members),
		})
	}
	return points, nil
}
