package analytics

import (
	"strconv"

	"github.com/spec-kit/interaction-analytics/internal/domain"
)

// DimensionSelector extracts a categorical key from an event. When the
// dimension has a finite, known domain, Domain declares its natural order;
// a nil Domain means keys are ordered first-seen.
type DimensionSelector struct {
	Name   string
	Key    func(domain.Event) string
	Domain []string
}

// HourSelector buckets events by hour of day, ordered 0-23.
func HourSelector() DimensionSelector {
	hours := make([]string, 24)
	for h := range hours {
		hours[h] = strconv.Itoa(h)
	}
	return DimensionSelector{
		Name:   "hour",
		Key:    func(e domain.Event) string { return strconv.Itoa(e.Hour) },
		Domain: hours,
	}
}

// ChannelSelector buckets events by channel, in enum declaration order.
func ChannelSelector() DimensionSelector {
	order := make([]string, len(domain.Channels))
	for i, c := range domain.Channels {
		order[i] = string(c)
	}
	return DimensionSelector{
		Name:   "channel",
		Key:    func(e domain.Event) string { return string(e.Channel) },
		Domain: order,
	}
}

// WeekdaySelector buckets events by ISO weekday, Monday first.
func WeekdaySelector() DimensionSelector {
	order := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	return DimensionSelector{
		Name: "weekday",
		Key: func(e domain.Event) string {
			return order[(int(e.CalendarDate.Weekday())+6)%7]
		},
		Domain: order,
	}
}

// ProductGroupSelector buckets events by product group, in enum declaration
// order.
func ProductGroupSelector() DimensionSelector {
	order := make([]string, len(domain.ProductGroups))
	for i, g := range domain.ProductGroups {
		order[i] = string(g)
	}
	return DimensionSelector{
		Name:   "product_group",
		Key:    func(e domain.Event) string { return string(e.ProductGroup) },
		Domain: order,
	}
}

// HeatmapMatrix is a dense count matrix over observed row and column keys.
type HeatmapMatrix struct {
	RowKeys []string `json:"row_keys"`
	ColKeys []string `json:"col_keys"`
	Cells   [][]int  `json:"cells"` // Cells[row][col]
}

// Cell returns the count for the given keys, zero when either is unknown.
func (m HeatmapMatrix) Cell(row, col string) int {
	ri, ci := -1, -1
	for i, k := range m.RowKeys {
		if k == row {
			ri = i
		}
	}
	for i, k := range m.ColKeys {
		if k == col {
			ci = i
		}
	}
	if ri < 0 || ci < 0 {
		return 0
	}
	return m.Cells[ri][ci]
}

// BuildHeatmap counts events per (y, x) key combination. Key sets are the
// observed values, ordered by the selector's declared domain when present,
// first-seen otherwise. Unobserved combinations of observed keys are zero.
func BuildHeatmap(events []domain.Event, x, y DimensionSelector) HeatmapMatrix {
	counts := make(map[[2]string]int)
	rowSeen, colSeen := []string{}, []string{}
	rowIdx := make(map[string]bool)
	colIdx := make(map[string]bool)

	for _, e := range events {
		rk, ck := y.Key(e), x.Key(e)
		counts[[2]string{rk, ck}]++
		if !rowIdx[rk] {
			rowIdx[rk] = true
			rowSeen = append(rowSeen, rk)
		}
		if !colIdx[ck] {
			colIdx[ck] = true
			colSeen = append(colSeen, ck)
		}
	}

	rows := orderKeys(rowSeen, rowIdx, y.Domain)
	cols := orderKeys(colSeen, colIdx, x.Domain)

	cells := make([][]int, len(rows))
	for i, rk := range rows {
		cells[i] = make([]int, len(cols))
		for j, ck := range cols {
			cells[i][j] = counts[[2]string{rk, ck}]
		}
	}
	return HeatmapMatrix{RowKeys: rows, ColKeys: cols, Cells: cells}
}

// orderKeys arranges observed keys by the declared domain order, appending
// any stragglers outside the domain in first-seen order.
func orderKeys(seen []string, present map[string]bool, domainOrder []string) []string {
	if domainOrder == nil {
		return seen
	}
	ordered := make([]string, 0, len(seen))
	inDomain := make(map[string]bool, len(domainOrder))
	for _, k := range domainOrder {
		inDomain[k] = true
		if present[k] {
			ordered = append(ordered, k)
		}
	}
	for _, k := range seen {
		if !inDomain[k] {
			ordered = append(ordered, k)
		}
	}
	return ordered
}
