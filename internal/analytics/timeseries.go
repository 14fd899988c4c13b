package analytics

import (
	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// Metric maps one day's events to a numeric value. It must return a defined
// value (normally zero) for an empty day.
type Metric func(dayEvents []domain.Event) float64

// TagShareMetric is the percentage of a day's events carrying the tag.
// An empty day yields zero.
func TagShareMetric(tag domain.ProblemTag) Metric {
	return func(events []domain.Event) float64 {
		if len(events) == 0 {
			return 0
		}
		carrying := 0
		for _, e := range events {
			if e.Tags.Has(tag) {
				carrying++
			}
		}
		return 100 * float64(carrying) / float64(len(events))
	}
}

// OverlapRateMetric is the percentage of a day's events carrying two or more
// concurrent problem tags.
func OverlapRateMetric() Metric {
	return func(events []domain.Event) float64 {
		if len(events) == 0 {
			return 0
		}
		multi := 0
		for _, e := range events {
			if e.Tags.Len() >= 2 {
				multi++
			}
		}
		return 100 * float64(multi) / float64(len(events))
	}
}

// BuildTimeSeries evaluates the metric per day over the full span of
// observed days and buckets the result. The series is dense: every day
// between the earliest and latest observed date contributes a point, zero
// when no event supports it. An empty input yields an empty series.
func BuildTimeSeries(events []domain.Event, metric Metric, g domain.Granularity) []MetricPoint {
	if len(events) == 0 {
		return []MetricPoint{}
	}

	byDay := make(map[string][]domain.Event)
	minDay := domain.Day(events[0].CalendarDate)
	maxDay := minDay
	for _, e := range events {
		day := domain.Day(e.CalendarDate)
		byDay[day.Format(dayLayout)] = append(byDay[day.Format(dayLayout)], e)
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}

	var raw []RawPoint
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		raw = append(raw, RawPoint{Date: day, Value: metric(byDay[day.Format(dayLayout)])})
	}
	return BucketSeries(raw, g)
}
