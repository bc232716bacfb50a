package picking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByProductName returns a copy of rows ordered by product name using
// Japanese collation. Equal names keep their first-seen order. The input
// slice is left untouched.
func SortByProductName(rows []PickingAggregateRow) []PickingAggregateRow {
	out := make([]PickingAggregateRow, len(rows))
	copy(out, rows)

	// A Collator keeps internal buffers; one per call.
	c := collate.New(language.Japanese)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].ProductName, out[j].ProductName) < 0
	})
	return out
}
