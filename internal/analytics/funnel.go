package analytics

import (
	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// StageClassifier assigns an event to the single funnel stage it has
// reached, or reports that it belongs to none.
type StageClassifier func(domain.Event) (domain.FunnelStage, bool)

// FunnelRow is the aggregate for one funnel stage.
type FunnelRow struct {
	Stage         domain.FunnelStage `json:"stage"`
	Count         int                `json:"count"`
	ConversionPct float64            `json:"conversion_pct"`
	DropOffPct    float64            `json:"drop_off_pct"`
}

// BuildFunnel counts events per stage and derives conversion and drop-off
// percentages. Conversion is relative to the first stage, drop-off to the
// previous stage; any division by zero maps to zero. Zero-count stages are
// emitted, never skipped.
func BuildFunnel(events []domain.Event, stages []domain.FunnelStage, classify StageClassifier) []FunnelRow {
	counts := make(map[domain.FunnelStage]int, len(stages))
	for _, e := range events {
		if stage, ok := classify(e); ok {
			counts[stage]++
		}
	}

	rows := make([]FunnelRow, 0, len(stages))
	for i, stage := range stages {
		row := FunnelRow{Stage: stage, Count: counts[stage]}
		if first := counts[stages[0]]; first > 0 {
			row.ConversionPct = Round1(100 * float64(row.Count) / float64(first))
		}
		if i > 0 {
			if prev := counts[stages[i-1]]; prev > 0 {
				row.DropOffPct = Round1(100 * (1 - float64(row.Count)/float64(prev)))
			}
		}
		rows = append(rows, row)
	}
	return rows
}
