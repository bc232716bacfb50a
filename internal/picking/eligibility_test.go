package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartpick/picklist/internal/types"
)

func TestEligible(t *testing.T) {
	master := newMaster(
		masterRow{sku: "ABC-1", jan: "J1"},
		masterRow{sku: "xyz-2", jan: "J2"},
	)
	idx := NewMasterIndex(master, nil, nil)
	rows := master.DataRows()
	existsCol := idx.Columns().Index(FieldExists)

	tests := []struct {
		name string
		item types.OrderLineItem
		want bool
	}{
		{"product sku", types.OrderLineItem{ProductSKU: "ABC-1"}, true},
		{"product sku other case", types.OrderLineItem{ProductSKU: "abc-1"}, true},
		{"product code", types.OrderLineItem{ProductCode: "XYZ-2"}, true},
		{"code misses sku hits", types.OrderLineItem{ProductCode: "nope", ProductSKU: "xyz-2"}, true},
		{"neither", types.OrderLineItem{ProductCode: "nope", ProductSKU: "none"}, false},
		{"empty", types.OrderLineItem{}, false},
		{"management number alone", types.OrderLineItem{SKUManagementNumber: "ABC-1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Eligible(tt.item))
			assert.Equal(t, tt.want, Eligible(tt.item, rows, existsCol), "scan and index disagree")
		})
	}
}

func TestEligibleUsesExistsColumn(t *testing.T) {
	master := newMaster(masterRow{sku: "S1", jan: "J1"})
	spec := DefaultColumnSpec().WithOverrides(ColumnRule{Field: FieldExists, Fallback: 5})
	idx := NewMasterIndex(master, spec, nil)

	assert.True(t, idx.Eligible(types.OrderLineItem{ProductSKU: "j1"}))
	assert.False(t, idx.Eligible(types.OrderLineItem{ProductSKU: "S1"}))
}
