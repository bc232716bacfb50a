package picking

import "strings"

// PickingAggregateRow is one line of the picking list: every resolved order
// line sharing a key, merged.
type PickingAggregateRow struct {
	// ProductName, JAN, ParentJAN and HasParent come from the first line
	// seen for the key and are never overwritten by later merges.
	ProductName string
	JAN         string
	ParentJAN   string
	HasParent   bool

	OrderQuantity   int
	SingleUnitCount int

	// ParentQuantity is present once the row was seeded by a SET line or
	// received any merge; absent parent quantities count as 0.
	ParentQuantity    int
	HasParentQuantity bool
}

// Key returns the aggregation key of the row.
func (r PickingAggregateRow) Key() string {
	if r.JAN != "" {
		return r.JAN
	}
	return r.ProductName
}

// IsSet reports whether the row is a set/bundle row for the grand total.
func (r PickingAggregateRow) IsSet() bool {
	return strings.TrimSpace(r.ParentJAN) != ""
}

// Aggregator merges resolved lines into unique picking rows, keeping the
// order in which keys were first seen.
type Aggregator struct {
	order []string
	rows  map[string]*PickingAggregateRow
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{rows: make(map[string]*PickingAggregateRow)}
}

// Add merges one resolved line. Skipped lines are ignored and report false.
func (a *Aggregator) Add(id ResolvedIdentity) bool {
	if id.Skipped() {
		return false
	}

	key := id.Key()
	existing, found := a.rows[key]
	if !found {
		// create
		a.rows[key] = &PickingAggregateRow{
			ProductName:       id.ProductName,
			JAN:               id.JAN,
			ParentJAN:         id.ParentJAN,
			HasParent:         id.HasParent,
			OrderQuantity:     id.OrderQuantity,
			SingleUnitCount:   id.SingleUnitCount,
			ParentQuantity:    id.ParentQuantity,
			HasParentQuantity: id.HasParent,
		}
		a.order = append(a.order, key)
		return true
	}

	// merge
	existing.OrderQuantity += id.OrderQuantity
	existing.SingleUnitCount += id.SingleUnitCount
	existing.ParentQuantity += id.ParentQuantity
	existing.HasParentQuantity = true
	return true
}

// Len returns the number of distinct rows.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Rows returns a copy of the rows in first-seen order.
func (a *Aggregator) Rows() []PickingAggregateRow {
	out := make([]PickingAggregateRow, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.rows[key])
	}
	return out
}

// TotalSingleUnits is the grand total printed under the picking list: set
// rows contribute their case count, other rows their unit count.
func (a *Aggregator) TotalSingleUnits() int {
	return TotalSingleUnits(a.Rows())
}

// TotalSingleUnits computes the grand total over any row slice.
func TotalSingleUnits(rows []PickingAggregateRow) int {
	total := 0
	for _, r := range rows {
		if r.IsSet() {
			total += r.OrderQuantity
		} else {
			total += r.SingleUnitCount
		}
	}
	return total
}
