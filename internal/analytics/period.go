package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

const dayLayout = "2006-01-02"

// RawPoint is a per-day value before bucketing.
type RawPoint struct {
	Date  time.Time
	Value float64
}

// MetricPoint is one aggregated point of a series. Bucket is the ISO date of
// the first day of the bucket; lexicographic order equals chronological order.
type MetricPoint struct {
	Bucket string  `json:"bucket"`
	Value  float64 `json:"value"`
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BucketDate returns the first day of the bucket containing d: the date
// itself for day granularity, the Monday of the ISO week, or the first of
// the month.
func BucketDate(d time.Time, g domain.Granularity) time.Time {
	d = domain.Day(d)
	switch g {
	case domain.GranularityWeek:
		// Monday = 0 under (weekday+6) mod 7.
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case domain.GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// BucketKey returns the canonical string key for the bucket containing d.
func BucketKey(d time.Time, g domain.Granularity) string {
	return BucketDate(d, g).Format(dayLayout)
}

// NextBucket returns the first day of the bucket following d's bucket.
func NextBucket(d time.Time, g domain.Granularity) time.Time {
	start := BucketDate(d, g)
	switch g {
	case domain.GranularityWeek:
		return start.AddDate(0, 0, 7)
	case domain.GranularityMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// ParseDay parses an ISO calendar date, reporting whether it was valid.
// Callers drop records with invalid dates rather than failing.
func ParseDay(s string) (time.Time, bool) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// BucketSeries groups per-day points into buckets of the given granularity,
// averaging values inside each bucket. Results are rounded to one decimal and
// sorted ascending by bucket key. Day granularity keeps points as-is apart
// from sorting and rounding.
func BucketSeries(points []RawPoint, g domain.Granularity) []MetricPoint {
	sums := make(map[string]float64, len(points))
	counts := make(map[string]int, len(points))
	for _, p := range points {
		key := BucketKey(p.Date, g)
		sums[key] += p.Value
		counts[key]++
	}

	out := make([]MetricPoint, 0, len(sums))
	for key, sum := range sums {
		out = append(out, MetricPoint{Bucket: key, Value: Round1(sum / float64(counts[key]))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
