package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

func TestBuildHeatmapHourByChannel(t *testing.T) {
	events := []domain.Event{
		{Hour: 9, Channel: domain.ChannelCallCenter},
		{Hour: 9, Channel: domain.ChannelCallCenter},
		{Hour: 14, Channel: domain.ChannelCallCenter},
		{Hour: 9, Channel: domain.ChannelChat},
	}
	m := BuildHeatmap(events, HourSelector(), ChannelSelector())

	// Observed keys only, hours numeric ascending, channels in enum order.
	assert.Equal(t, []string{"9", "14"}, m.ColKeys)
	assert.Equal(t, []string{"CALL_CENTER", "CHAT"}, m.RowKeys)

	assert.Equal(t, 2, m.Cell("CALL_CENTER", "9"))
	assert.Equal(t, 1, m.Cell("CALL_CENTER", "14"))
	assert.Equal(t, 1, m.Cell("CHAT", "9"))
	// Observed row/col with no events at the combination is zero, not absent.
	assert.Equal(t, 0, m.Cell("CHAT", "14"))
}

func TestBuildHeatmapFirstSeenOrderWithoutDomain(t *testing.T) {
	processes := DimensionSelector{
		Name: "process",
		Key:  func(e domain.Event) string { return e.Process },
	}
	events := []domain.Event{
		{Process: "complaint", Channel: domain.ChannelChat},
		{Process: "request", Channel: domain.ChannelChat},
		{Process: "complaint", Channel: domain.ChannelEmail},
	}
	m := BuildHeatmap(events, processes, ChannelSelector())
	assert.Equal(t, []string{"complaint", "request"}, m.ColKeys)
}

func TestBuildHeatmapEmptyInput(t *testing.T) {
	m := BuildHeatmap(nil, HourSelector(), ChannelSelector())
	assert.Empty(t, m.RowKeys)
	assert.Empty(t, m.ColKeys)
	assert.Empty(t, m.Cells)
	assert.Zero(t, m.Cell("CHAT", "9"))
}

func TestBuildHeatmapWeekdayOrdering(t *testing.T) {
	events := []domain.Event{
		{CalendarDate: day("2024-01-07"), Channel: domain.ChannelChat}, // Sunday
		{CalendarDate: day("2024-01-01"), Channel: domain.ChannelChat}, // Monday
		{CalendarDate: day("2024-01-03"), Channel: domain.ChannelChat}, // Wednesday
	}
	m := BuildHeatmap(events, WeekdaySelector(), ChannelSelector())
	assert.Equal(t, []string{"Mon", "Wed", "Sun"}, m.ColKeys)
	require.Len(t, m.Cells, 1)
	assert.Equal(t, []int{1, 1, 1}, m.Cells[0])
}
