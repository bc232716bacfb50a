package picking

import "github.com/smartpick/picklist/internal/types"

// masterRow describes one product master data row by field.
type masterRow struct {
	sku         string
	jan         string
	setCount    string
	parentAsin2 string
	parentJan2  string
	setCount2   string
	name        string
	source      string
	target      string
}

func (r masterRow) cells() []string {
	c := make([]string, 23)
	c[5] = r.jan
	c[6] = r.setCount
	c[7] = r.parentAsin2
	c[8] = r.parentJan2
	c[9] = r.setCount2
	c[16] = r.sku
	c[17] = r.name
	c[21] = r.source
	c[22] = r.target
	return c
}

func masterHeader() []string {
	h := make([]string, 23)
	h[4] = "親ASIN"
	h[5] = "JAN"
	h[6] = "SET数"
	h[7] = "親ASIN-2"
	h[8] = "親JAN-2"
	h[9] = "SET-2"
	h[10] = "子ASIN"
	h[16] = "商品SKU"
	h[17] = "親"
	h[21] = "引継ぎ元"
	h[22] = "引継ぎ先"
	return h
}

func newMaster(rows ...masterRow) types.MasterTable {
	t := types.MasterTable{masterHeader()}
	for _, r := range rows {
		t = append(t, r.cells())
	}
	return t
}

func orderLine(sku, qty string) types.OrderLineItem {
	return types.OrderLineItem{
		OrderID:       "ORD-" + sku,
		ProductSKU:    sku,
		ProductName:   "order name " + sku,
		OrderQuantity: qty,
	}
}
