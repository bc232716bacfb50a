package picking

import (
	"strings"

	"github.com/smartpick/picklist/internal/types"
)

// Eligible reports whether the item has any representation in the master
// table: its product code or product SKU equals, case-insensitively, the
// existence-column cell of at least one data row.
//
// This is the one predicate behind the picking pre-filter, the per-line
// exclusion flag and the excluded count.
func (m *MasterIndex) Eligible(item types.OrderLineItem) bool {
	return m.hasExisting(item.ProductCode) || m.hasExisting(item.ProductSKU)
}

func (m *MasterIndex) hasExisting(id string) bool {
	if id == "" {
		return false
	}
	_, ok := m.exists[strings.ToLower(id)]
	return ok
}

// Eligible is the unindexed form of (*MasterIndex).Eligible: a linear scan of
// rows comparing the cell at existsCol. It is kept for callers holding raw
// rows and as a reference for the indexed version.
func Eligible(item types.OrderLineItem, rows [][]string, existsCol int) bool {
	return scanExists(item.ProductCode, rows, existsCol) || scanExists(item.ProductSKU, rows, existsCol)
}

func scanExists(id string, rows [][]string, col int) bool {
	if id == "" {
		return false
	}
	key := strings.ToLower(id)
	for _, row := range rows {
		if v := cell(row, col); v != "" && strings.ToLower(v) == key {
			return true
		}
	}
	return false
}
