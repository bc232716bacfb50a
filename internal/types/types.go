// =============================================================================
// smartpick - Shared Types
// =============================================================================
//
// This package contains the types shared by the ingestion side (csvparser,
// orders, mastersheet) and the picking engine, kept here to avoid import
// cycles. Types defined here are used by:
//   - orders       (builds OrderLineItem values from export rows)
//   - mastersheet  (produces MasterTable snapshots)
//   - picking      (consumes both)
//   - report       (renders order lines next to picking rows)
//
// =============================================================================

package types

// =============================================================================
// ORDER TYPES
// =============================================================================

// OrderLineItem is one row of an e-commerce order export: one product and
// quantity pair. Values are kept as text exactly as exported; the picking
// engine decides how to interpret the numeric ones.
type OrderLineItem struct {
	// OrderID is the shop order number (受注番号).
	OrderID string

	// GroupID identifies the shipment group several lines belong to
	// (GoQ管理番号). Used for the unique order count.
	GroupID string

	// OrderedAt is the order timestamp as exported.
	OrderedAt string

	// ShippingMethod is the carrier / delivery method column.
	ShippingMethod string

	// CheckNote is the free-form check column operators use for notes.
	CheckNote string

	Store          string
	TrackingNumber string
	PostalCode     string
	Address        string
	RecipientName  string
	BuyerName      string
	TotalAmount    string
	ProductURL     string

	// ProductName is the listing title from the shop. Used when the master
	// table has no better name.
	ProductName string

	// OrderQuantity is the ordered quantity as text.
	OrderQuantity string

	// JANCode is the JAN supplied by the export. It may be stale; the picking
	// list uses the master table's JAN instead.
	JANCode string

	ProductCode         string
	SKUManagementNumber string
	ProductSKU          string

	// SourceRow is the 1-based row number in the source file.
	// Useful for error reporting.
	SourceRow int
}

// =============================================================================
// MASTER TABLE
// =============================================================================

// MasterTable is a snapshot of the product master sheet: ordered rows of
// ordered text cells, the first row holding the header labels. Rows may have
// different lengths; a missing cell reads as empty.
type MasterTable [][]string

// Header returns the header row, or nil for an empty table.
func (t MasterTable) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// DataRows returns every row after the header.
func (t MasterTable) DataRows() [][]string {
	if len(t) <= 1 {
		return nil
	}
	return t[1:]
}
