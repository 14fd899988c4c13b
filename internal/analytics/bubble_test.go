package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

func defaultWeights() Weights {
	return Weights{
		domain.TagTechIssue:        0.2,
		domain.TagUnresolved:       0.3,
		domain.TagNegativeFeedback: 0.2,
		domain.TagChurnRisk:        0.3,
	}
}

func bubbleEvent(date time.Time, group domain.ProductGroup, tags ...domain.ProblemTag) domain.Event {
	return domain.Event{CalendarDate: date, ProductGroup: group, Tags: domain.NewTagSet(tags...)}
}

func TestBuildBubbleMatrixScoreAndZone(t *testing.T) {
	// 10 events: 1 with TECH_ISSUE, 2 with UNRESOLVED → shares 10 and 20,
	// score 0.2*10 + 0.3*20 = 8.
	events := make([]domain.Event, 0, 10)
	events = append(events, bubbleEvent(day("2024-01-01"), domain.ProductGroupCards, domain.TagTechIssue))
	events = append(events, bubbleEvent(day("2024-01-01"), domain.ProductGroupCards, domain.TagUnresolved))
	events = append(events, bubbleEvent(day("2024-01-01"), domain.ProductGroupCards, domain.TagUnresolved))
	for i := 0; i < 7; i++ {
		events = append(events, bubbleEvent(day("2024-01-01"), domain.ProductGroupCards))
	}

	points, err := BuildBubbleMatrix(events, BubbleConfig{
		Weights:    defaultWeights(),
		Thresholds: ZoneThresholds{Lower: 5, Upper: 30},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)

	p := points[0]
	assert.Equal(t, "CARDS", p.ID)
	assert.InDelta(t, 8.0, p.Score, 1e-9)
	assert.Equal(t, domain.ZoneYellow, p.Zone)
	assert.Equal(t, 10, p.Weight)
	assert.InDelta(t, 10.0, p.Shares[domain.TagTechIssue], 1e-9)
	assert.InDelta(t, 20.0, p.Shares[domain.TagUnresolved], 1e-9)
	assert.InDelta(t, 0.0, p.Shares[domain.TagChurnRisk], 1e-9)
}

func TestBuildBubbleMatrixPeriodizedIsSparse(t *testing.T) {
	g := domain.GranularityMonth
	events := []domain.Event{
		bubbleEvent(day("2024-01-10"), domain.ProductGroupCards, domain.TagChurnRisk),
		// Cards has nothing in February; Loans only in March.
		bubbleEvent(day("2024-03-10"), domain.ProductGroupLoans),
	}
	points, err := BuildBubbleMatrix(events, BubbleConfig{
		Weights:     defaultWeights(),
		Thresholds:  ZoneThresholds{Lower: 5, Upper: 30},
		Granularity: &g,
	})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "CARDS", points[0].ID)
	assert.Equal(t, "2024-01-01", points[0].Period)
	assert.Equal(t, "LOANS", points[1].ID)
	assert.Equal(t, "2024-03-01", points[1].Period)
}

func TestBuildBubbleMatrixZonesAtBoundaries(t *testing.T) {
	// Every event tagged CHURN_RISK: share 100, weight 0.3 → score 30.
	events := []domain.Event{
		bubbleEvent(day("2024-01-01"), domain.ProductGroupCards, domain.TagChurnRisk),
	}
	points, err := BuildBubbleMatrix(events, BubbleConfig{
		Weights:    defaultWeights(),
		Thresholds: ZoneThresholds{Lower: 5, Upper: 30},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.InDelta(t, 30.0, points[0].Score, 1e-9)
	assert.Equal(t, domain.ZoneRed, points[0].Zone)
}

func TestBuildBubbleMatrixRejectsInvertedThresholds(t *testing.T) {
	_, err := BuildBubbleMatrix(nil, BubbleConfig{
		Weights:    defaultWeights(),
		Thresholds: ZoneThresholds{Lower: 30, Upper: 5},
	})
	assert.Error(t, err)
}

func TestBuildBubbleMatrixEmptyInput(t *testing.T) {
	points, err := BuildBubbleMatrix(nil, BubbleConfig{
		Weights:    defaultWeights(),
		Thresholds: ZoneThresholds{Lower: 5, Upper: 30},
	})
	require.NoError(t, err)
	assert.Empty(t, points)
}
