package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// stageByStatus classifies by a status→stage lookup, the shape the service
// layer configures.
func stageByStatus(mapping map[string]domain.FunnelStage) StageClassifier {
	return func(e domain.Event) (domain.FunnelStage, bool) {
		stage, ok := mapping[e.Status]
		return stage, ok
	}
}

func funnelFixture(counts map[domain.FunnelStage]int) []domain.Event {
	var events []domain.Event
	for stage, n := range counts {
		for i := 0; i < n; i++ {
			events = append(events, domain.Event{Status: string(stage)})
		}
	}
	return events
}

func identityClassifier() StageClassifier {
	mapping := make(map[string]domain.FunnelStage, len(domain.FunnelStages))
	for _, s := range domain.FunnelStages {
		mapping[string(s)] = s
	}
	return stageByStatus(mapping)
}

func TestBuildFunnelConversionAndDropOff(t *testing.T) {
	events := funnelFixture(map[domain.FunnelStage]int{
		domain.StageIntake:  100,
		domain.StageRouting: 80,
		domain.StageWork:    80,
		domain.StageResolve: 40,
	})
	rows := BuildFunnel(events, domain.FunnelStages, identityClassifier())
	require.Len(t, rows, 4)

	assert.Equal(t, FunnelRow{Stage: domain.StageIntake, Count: 100, ConversionPct: 100, DropOffPct: 0}, rows[0])
	assert.Equal(t, FunnelRow{Stage: domain.StageRouting, Count: 80, ConversionPct: 80, DropOffPct: 20}, rows[1])
	assert.Equal(t, FunnelRow{Stage: domain.StageWork, Count: 80, ConversionPct: 80, DropOffPct: 0}, rows[2])
	assert.Equal(t, FunnelRow{Stage: domain.StageResolve, Count: 40, ConversionPct: 40, DropOffPct: 50}, rows[3])
}

func TestBuildFunnelEmitsZeroCountStages(t *testing.T) {
	events := funnelFixture(map[domain.FunnelStage]int{
		domain.StageIntake:  10,
		domain.StageResolve: 5,
	})
	rows := BuildFunnel(events, domain.FunnelStages, identityClassifier())
	require.Len(t, rows, 4)

	// Routing is empty: full drop-off from a populated Intake.
	assert.Equal(t, FunnelRow{Stage: domain.StageRouting, Count: 0, ConversionPct: 0, DropOffPct: 100}, rows[1])
	// Work is empty after an empty Routing: division by zero maps to 0.
	assert.Equal(t, FunnelRow{Stage: domain.StageWork, Count: 0, ConversionPct: 0, DropOffPct: 0}, rows[2])
}

func TestBuildFunnelEmptyInput(t *testing.T) {
	rows := BuildFunnel(nil, domain.FunnelStages, identityClassifier())
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Zero(t, row.Count)
		assert.Zero(t, row.ConversionPct)
		assert.Zero(t, row.DropOffPct)
	}
}

func TestBuildFunnelUnclassifiedEventsIgnored(t *testing.T) {
	events := append(
		funnelFixture(map[domain.FunnelStage]int{domain.StageIntake: 3}),
		domain.Event{Status: "UNKNOWN"},
	)
	rows := BuildFunnel(events, domain.FunnelStages, identityClassifier())
	assert.Equal(t, 3, rows[0].Count)
}
