package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

func sampleEvents() []domain.Event {
	return []domain.Event{
		{
			ID:           "e1",
			CalendarDate: day("2024-01-01"),
			Sector:       domain.SectorRetail,
			Channel:      domain.ChannelCallCenter,
			ProductGroup: domain.ProductGroupCards,
		},
		{
			ID:           "e2",
			CalendarDate: day("2024-01-05"),
			Sector:       domain.SectorSME,
			Channel:      domain.ChannelChat,
			ProductGroup: domain.ProductGroupLoans,
		},
		{
			ID:           "e3",
			CalendarDate: day("2024-02-01"),
			Sector:       domain.SectorRetail,
			Channel:      domain.ChannelChat,
			ProductGroup: domain.ProductGroupCards,
		},
	}
}

func ptr[T any](v T) *T { return &v }

func TestFilterEmptySpecMatchesEverything(t *testing.T) {
	events := sampleEvents()
	assert.Len(t, Filter(events, FilterSpec{}), len(events))
}

func TestFilterPredicatesCombineWithAnd(t *testing.T) {
	got := Filter(sampleEvents(), FilterSpec{
		Sector:  ptr(domain.SectorRetail),
		Channel: ptr(domain.ChannelChat),
	})
	require.Len(t, got, 1)
	assert.Equal(t, "e3", got[0].ID)
}

func TestFilterAllProductGroupSentinel(t *testing.T) {
	got := Filter(sampleEvents(), FilterSpec{ProductGroup: ptr(domain.ProductGroupAll)})
	assert.Len(t, got, 3)
}

func TestFilterDateRangeClosedBounds(t *testing.T) {
	got := Filter(sampleEvents(), FilterSpec{Dates: domain.DateRange{
		From: ptr(day("2024-01-01")),
		To:   ptr(day("2024-01-05")),
	}})
	assert.Len(t, got, 2)
}

func TestFilterFromOnlyMeansSingleDay(t *testing.T) {
	got := Filter(sampleEvents(), FilterSpec{Dates: domain.DateRange{
		From: ptr(day("2024-01-05")),
	}})
	require.Len(t, got, 1)
	assert.Equal(t, "e2", got[0].ID)
}

func TestFilterInvertedRangeMatchesNothing(t *testing.T) {
	got := Filter(sampleEvents(), FilterSpec{Dates: domain.DateRange{
		From: ptr(day("2024-03-01")),
		To:   ptr(day("2024-01-01")),
	}})
	assert.Empty(t, got)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	events := sampleEvents()
	before := make([]domain.Event, len(events))
	copy(before, events)
	_ = Filter(events, FilterSpec{Sector: ptr(domain.SectorSME)})
	assert.Equal(t, before, events)
}

func TestFingerprintDistinguishesSpecs(t *testing.T) {
	a := FilterSpec{Sector: ptr(domain.SectorRetail)}
	b := FilterSpec{Channel: ptr(domain.ChannelChat)}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// Same criteria through fresh pointers fingerprint identically.
	c := FilterSpec{Sector: ptr(domain.SectorRetail)}
	assert.Equal(t, a.Fingerprint(), c.Fingerprint())
}

func TestFingerprintNormalizesFromOnlyRange(t *testing.T) {
	from := day("2024-01-05")
	single := FilterSpec{Dates: domain.DateRange{From: &from}}
	explicit := FilterSpec{Dates: domain.DateRange{From: &from, To: ptr(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))}}
	assert.Equal(t, explicit.Fingerprint(), single.Fingerprint())
}
