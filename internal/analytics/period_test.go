package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

func day(s string) time.Time {
	t, ok := ParseDay(s)
	if !ok {
		panic("bad test date: " + s)
	}
	return t
}

func TestBucketKeyDay(t *testing.T) {
	assert.Equal(t, "2024-01-02", BucketKey(day("2024-01-02"), domain.GranularityDay))
}

func TestBucketKeyWeekStartsMonday(t *testing.T) {
	// 2024-01-01 is a Monday.
	assert.Equal(t, "2024-01-01", BucketKey(day("2024-01-01"), domain.GranularityWeek))
	assert.Equal(t, "2024-01-01", BucketKey(day("2024-01-03"), domain.GranularityWeek))
	assert.Equal(t, "2024-01-01", BucketKey(day("2024-01-07"), domain.GranularityWeek)) // Sunday
	assert.Equal(t, "2024-01-08", BucketKey(day("2024-01-08"), domain.GranularityWeek))
}

func TestBucketKeyMonth(t *testing.T) {
	assert.Equal(t, "2024-02-01", BucketKey(day("2024-02-29"), domain.GranularityMonth))
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.1, Round1(0.05))
	assert.Equal(t, -0.1, Round1(-0.05))
	assert.Equal(t, 2.3, Round1(2.25))
	assert.Equal(t, 50.0, Round1(50.0))
}

func TestRound1Idempotent(t *testing.T) {
	for _, v := range []float64{0, 0.05, 1.23, -7.777, 99.95} {
		once := Round1(v)
		assert.Equal(t, once, Round1(once))
	}
}

func TestBucketSeriesDayKeepsPointsSorted(t *testing.T) {
	series := BucketSeries([]RawPoint{
		{Date: day("2024-01-02"), Value: 30},
		{Date: day("2024-01-01"), Value: 10},
	}, domain.GranularityDay)
	require.Len(t, series, 2)
	assert.Equal(t, MetricPoint{Bucket: "2024-01-01", Value: 10}, series[0])
	assert.Equal(t, MetricPoint{Bucket: "2024-01-02", Value: 30}, series[1])
}

func TestBucketSeriesWeekAverages(t *testing.T) {
	series := BucketSeries([]RawPoint{
		{Date: day("2024-01-01"), Value: 50},
		{Date: day("2024-01-02"), Value: 50},
		{Date: day("2024-01-08"), Value: 10},
	}, domain.GranularityWeek)
	require.Len(t, series, 2)
	assert.Equal(t, MetricPoint{Bucket: "2024-01-01", Value: 50}, series[0])
	assert.Equal(t, MetricPoint{Bucket: "2024-01-08", Value: 10}, series[1])
}

func TestBucketSeriesMonthRoundsMean(t *testing.T) {
	series := BucketSeries([]RawPoint{
		{Date: day("2024-03-01"), Value: 1},
		{Date: day("2024-03-15"), Value: 2},
		{Date: day("2024-03-31"), Value: 2},
	}, domain.GranularityMonth)
	require.Len(t, series, 1)
	assert.Equal(t, MetricPoint{Bucket: "2024-03-01", Value: 1.7}, series[0])
}

func TestParseDayRejectsGarbage(t *testing.T) {
	_, ok := ParseDay("not-a-date")
	assert.False(t, ok)
	_, ok = ParseDay("2024-13-40")
	assert.False(t, ok)
}
