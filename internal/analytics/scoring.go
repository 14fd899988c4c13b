package analytics

import (
	"sort"

	"github.com/spec-kit/interaction-analytics/internal/domain"
	apperrors "github.com/spec-kit/interaction-analytics/pkg/util/errorutil"
)

// Weights assigns a numeric weight to each problem tag. Weights need not
// sum to 1.
type Weights map[domain.ProblemTag]float64

// Shares maps each problem tag to the percentage of events carrying it.
type Shares map[domain.ProblemTag]float64

// Score computes the weighted sum of shares over the weight mapping's keys.
// Tags absent from shares contribute zero.
func Score(shares Shares, weights Weights) float64 {
	var total float64
	for tag, w := range weights {
		total += shares[tag] * w
	}
	return total
}

// ZoneThresholds partitions a continuous score into the three zones.
type ZoneThresholds struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Validate rejects inverted thresholds. This is caller misconfiguration,
// surfaced rather than clamped.
func (t ZoneThresholds) Validate() error {
	if t.Lower > t.Upper {
		return apperrors.NewConfigError("zone thresholds inverted: lower > upper", map[string]any{
			"lower": t.Lower,
			"upper": t.Upper,
		})
	}
	return nil
}

// Classify assigns a zone. Boundaries are inclusive toward the outer zones:
// a score exactly at Lower is green, exactly at Upper is red.
func Classify(score float64, t ZoneThresholds) domain.Zone {
	switch {
	case score <= t.Lower:
		return domain.ZoneGreen
	case score >= t.Upper:
		return domain.ZoneRed
	default:
		return domain.ZoneYellow
	}
}

// ScoredEntity is any rankable dimension value with its score and zone.
type ScoredEntity struct {
	ID    string      `json:"id"`
	Label string      `json:"label"`
	Score float64     `json:"score"`
	Zone  domain.Zone `json:"zone"`
}

// RankTopN orders entities descending by score and truncates to n. The sort
// is stable: entities with equal score keep their original relative order.
func RankTopN(entities []ScoredEntity, n int) []ScoredEntity {
	ranked := make([]ScoredEntity, len(entities))
	copy(ranked, entities)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

func validateTopN(n int) error {
	if n < 1 {
		return apperrors.NewConfigError("top_n must be at least 1", map[string]any{"top_n": n})
	}
	return nil
}
