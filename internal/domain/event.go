package domain

import (
	"sort"
	"time"
)

// TagSet is a set of problem tags. The map representation makes duplicate
// tags impossible.
type TagSet map[ProblemTag]struct{}

// NewTagSet builds a set from the given tags.
func NewTagSet(tags ...ProblemTag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether the tag is present.
func (s TagSet) Has(tag ProblemTag) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s)
}

// Slice returns the tags in declaration order of the ProblemTag enum.
func (s TagSet) Slice() []ProblemTag {
	out := make([]ProblemTag, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return tagIndex(out[i]) < tagIndex(out[j]) })
	return out
}

func tagIndex(tag ProblemTag) int {
	for i, t := range ProblemTags {
		if t == tag {
			return i
		}
	}
	return len(ProblemTags)
}

// Event is a single normalized contact-center interaction record. Instances
// are treated as immutable once constructed.
type Event struct {
	ID           string
	CalendarDate time.Time // date-only, UTC midnight
	Hour         int       // 0-23, hour of day the interaction started
	Sector       Sector
	Channel      Channel
	ProductGroup ProductGroup
	Tags         TagSet
	Process      string
	Status       string
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateRange is an optionally open range of calendar dates. Bounds are
// inclusive on both ends.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Normalize applies the from-only convention: a range with a start and no
// end covers exactly that single day.
func (r DateRange) Normalize() DateRange {
	if r.From != nil && r.To == nil {
		day := Day(*r.From)
		return DateRange{From: &day, To: &day}
	}
	return r
}

// Inverted reports whether both bounds are set with from after to. An
// inverted range matches no dates.
func (r DateRange) Inverted() bool {
	return r.From != nil && r.To != nil && r.From.After(*r.To)
}

// Contains reports whether the date falls inside the range, each absent
// bound imposing no constraint.
func (r DateRange) Contains(d time.Time) bool {
	if r.Inverted() {
		return false
	}
	if r.From != nil && d.Before(Day(*r.From)) {
		return false
	}
	if r.To != nil && d.After(Day(*r.To)) {
		return false
	}
	return true
}
