package analytics

import (
	"strings"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// FilterSpec is a conjunction of optional predicates over interaction
// records. A nil criterion imposes no constraint.
type FilterSpec struct {
	Sector       *domain.Sector
	Channel      *domain.Channel
	ProductGroup *domain.ProductGroup
	Dates        domain.DateRange
}

// Matches reports whether the event satisfies every present predicate.
func (s FilterSpec) Matches(e domain.Event) bool {
	if s.Sector != nil && e.Sector != *s.Sector {
		return false
	}
	if s.Channel != nil && e.Channel != *s.Channel {
		return false
	}
	if s.ProductGroup != nil && *s.ProductGroup != domain.ProductGroupAll && e.ProductGroup != *s.ProductGroup {
		return false
	}
	return s.Dates.Normalize().Contains(e.CalendarDate)
}

// Fingerprint renders the filter deterministically for memoization keys.
func (s FilterSpec) Fingerprint() string {
	var b strings.Builder
	if s.Sector != nil {
		b.WriteString("sector=" + string(*s.Sector) + ";")
	}
	if s.Channel != nil {
		b.WriteString("channel=" + string(*s.Channel) + ";")
	}
	if s.ProductGroup != nil {
		b.WriteString("product_group=" + string(*s.ProductGroup) + ";")
	}
	r := s.Dates.Normalize()
	if r.From != nil {
		b.WriteString("from=" + r.From.Format(dayLayout) + ";")
	}
	if r.To != nil {
		b.WriteString("to=" + r.To.Format(dayLayout) + ";")
	}
	return b.String()
}

// Filter returns the matching subset as a fresh slice; the input is never
// mutated. An inverted date range yields an empty result.
func Filter(events []domain.Event, spec FilterSpec) []domain.Event {
	out := make([]domain.Event, 0, len(events))
	for _, e := range events {
		if spec.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}
