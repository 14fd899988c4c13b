package analytics

import (
	"sort"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// TargetDimension maps an event to the entity keys it supports. Tag
// dimensions map one event to several entities; the categorical dimensions
// map to exactly one.
type TargetDimension struct {
	Name string
	Keys func(domain.Event) []string
}

// ByProductGroup groups overlap analytics per product group.
func ByProductGroup() TargetDimension {
	return TargetDimension{
		Name: "product_group",
		Keys: func(e domain.Event) []string { return []string{string(e.ProductGroup)} },
	}
}

// ByChannel groups overlap analytics per channel.
func ByChannel() TargetDimension {
	return TargetDimension{
		Name: "channel",
		Keys: func(e domain.Event) []string { return []string{string(e.Channel)} },
	}
}

// ByTag groups overlap analytics per problem tag: each entity is the subset
// of events carrying that tag.
func ByTag() TargetDimension {
	return TargetDimension{
		Name: "tag",
		Keys: func(e domain.Event) []string {
			tags := e.Tags.Slice()
			keys := make([]string, len(tags))
			for i, t := range tags {
				keys[i] = string(t)
			}
			return keys
		},
	}
}

// OverlapConfig controls the overlap pipeline.
type OverlapConfig struct {
	Granularity domain.Granularity
	TopN        int
	Thresholds  ZoneThresholds
}

// OverlapPoint is one bucket of an entity's overlap trend.
type OverlapPoint struct {
	Bucket string  `json:"bucket"`
	Rate   float64 `json:"rate"`
}

// OverlapSeries is an entity's overlap trend, ordered by bucket key.
type OverlapSeries struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Points []OverlapPoint `json:"points"`
}

// OverlapSnapshot is an entity's latest-bucket overlap rate with its zone.
type OverlapSnapshot struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Rate  float64     `json:"rate"`
	Zone  domain.Zone `json:"zone"`
}

// OverlapResult bundles the trend series and the ranked snapshot view.
type OverlapResult struct {
	Series   []OverlapSeries   `json:"series"`
	Snapshot []OverlapSnapshot `json:"snapshot"`
}

// BuildOverlap computes per-bucket overlap rates (share of events carrying
// two or more concurrent tags) for each distinct value of the target
// dimension. Series are dense over every bucket spanned by the data: an
// entity without events in a bucket has rate zero there. The snapshot ranks
// entities by latest-bucket rate, stable descending, truncated to TopN.
func BuildOverlap(events []domain.Event, dim TargetDimension, cfg OverlapConfig) (OverlapResult, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return OverlapResult{}, err
	}
	if err := validateTopN(cfg.TopN); err != nil {
		return OverlapResult{}, err
	}

	result := OverlapResult{Series: []OverlapSeries{}, Snapshot: []OverlapSnapshot{}}
	if len(events) == 0 {
		return result, nil
	}

	type cell struct {
		total int
		multi int
	}
	perEntity := make(map[string]map[string]*cell)
	entityOrder := []string{}

	minDay := domain.Day(events[0].CalendarDate)
	maxDay := minDay
	for _, e := range events {
		day := domain.Day(e.CalendarDate)
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
		bucket := BucketKey(day, cfg.Granularity)
		for _, key := range dim.Keys(e) {
			buckets, ok := perEntity[key]
			if !ok {
				buckets = make(map[string]*cell)
				perEntity[key] = buckets
				entityOrder = append(entityOrder, key)
			}
			c, ok := buckets[bucket]
			if !ok {
				c = &cell{}
				buckets[bucket] = c
			}
			c.total++
			if e.Tags.Len() >= 2 {
				c.multi++
			}
		}
	}
	sort.Strings(entityOrder)

	// Full span of buckets between the earliest and latest observed day.
	bucketKeys := []string{}
	for d := BucketDate(minDay, cfg.Granularity); !d.After(maxDay); d = NextBucket(d, cfg.Granularity) {
		bucketKeys = append(bucketKeys, d.Format(dayLayout))
	}
	ranked := make([]ScoredEntity, 0, len(entityOrder))
	for _, key := range entityOrder {
		buckets := perEntity[key]
		points := make([]OverlapPoint, 0, len(bucketKeys))
		for _, bk := range bucketKeys {
			rate := 0.0
			if c := buckets[bk]; c != nil && c.total > 0 {
				rate = Round1(100 * float64(c.multi) / float64(c.total))
			}
			points = append(points, OverlapPoint{Bucket: bk, Rate: rate})
		}
		result.Series = append(result.Series, OverlapSeries{ID: key, Label: key, Points: points})

		latestRate := points[len(points)-1].Rate
		ranked = append(ranked, ScoredEntity{
			ID:    key,
			Label: key,
			Score: latestRate,
			Zone:  Classify(latestRate, cfg.Thresholds),
		})
	}

	for _, entity := range RankTopN(ranked, cfg.TopN) {
		result.Snapshot = append(result.Snapshot, OverlapSnapshot{
			ID:    entity.ID,
			Label: entity.Label,
			Rate:  entity.Score,
			Zone:  entity.Zone,
		})
	}
	return result, nil
}
