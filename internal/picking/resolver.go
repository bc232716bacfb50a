// =============================================================================
// smartpick - Product Resolver
// =============================================================================
//
// The resolver turns one order line into the identity that is actually
// picked from the shelf.
//
// RESOLUTION STEPS:
//   1. Find the master row by product SKU, then by SKU management number
//      (case-insensitive, against the SKU column)
//   2. Follow the migration hop once: a non-blank migration source is looked
//      up in the migration target column and, when found, replaces the row
//   3. Classify the row: a non-blank second parent ASIN makes it a SET, the
//      parent JAN and parent quantity then come from the "-2" columns
//   4. Without a row, the line keeps its own product name and an empty JAN
//   5. Parse the order quantity; 0 marks the line as skipped
//   6. Single units = set multiplier × order quantity
//
// =============================================================================

package picking

import (
	"strings"

	"github.com/smartpick/picklist/internal/types"
)

// ResolvedIdentity is the outcome of resolving one order line. It is created
// fresh per resolution and never modified afterwards.
type ResolvedIdentity struct {
	// JAN is the child unit JAN from the master row, "" without a match.
	JAN string

	// ParentJAN and ParentSetMultiplier are only meaningful when HasParent is
	// true (SET classification).
	ParentJAN           string
	ParentSetMultiplier int
	HasParent           bool

	SetMultiplier int
	ProductName   string

	OrderQuantity   int
	SingleUnitCount int

	// ParentQuantity = ParentSetMultiplier × OrderQuantity, SET only.
	ParentQuantity int

	// Matched is true when a master row was found; Migrated when the
	// migration hop replaced it.
	Matched  bool
	Migrated bool
}

// Skipped reports whether the line contributes nothing to aggregation.
func (r ResolvedIdentity) Skipped() bool {
	return r.OrderQuantity == 0
}

// Key is the aggregation key: the JAN, or the product name without one.
func (r ResolvedIdentity) Key() string {
	if r.JAN != "" {
		return r.JAN
	}
	return r.ProductName
}

// Resolver resolves order lines against one MasterIndex.
type Resolver struct {
	index *MasterIndex
	diag  Diagnostics
}

// NewResolver creates a resolver. A nil diag discards events.
func NewResolver(index *MasterIndex, diag Diagnostics) *Resolver {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Resolver{index: index, diag: diag}
}

// Resolve maps item to its canonical product identity. It never fails: every
// malformed input degrades to a documented default.
func (r *Resolver) Resolve(item types.OrderLineItem) ResolvedIdentity {
	id := ResolvedIdentity{
		SetMultiplier: 1,
		ProductName:   item.ProductName,
		OrderQuantity: ParseQuantity(item.OrderQuantity),
	}

	if id.OrderQuantity == 0 {
		r.diag.Report(r.lineEvent(EventZeroQuantity, item, item.OrderQuantity))
	}

	// =========================================================================
	// STEP 1: FIND THE MASTER ROW
	// =========================================================================

	row, ok := r.index.Lookup(item.ProductSKU)
	if !ok {
		row, ok = r.index.Lookup(item.SKUManagementNumber)
	}

	if !ok {
		r.diag.Report(r.lineEvent(EventNoMasterMatch, item, ""))
		id.SingleUnitCount = id.SetMultiplier * id.OrderQuantity
		return id
	}
	id.Matched = true

	// =========================================================================
	// STEP 2: ONE MIGRATION HOP
	// =========================================================================
	// The target row is used as-is even when it names a further source.

	if source := r.index.Cell(row, FieldMigrationSource); strings.TrimSpace(source) != "" {
		if target, found := r.index.lookupTarget(source); found {
			row = target
			id.Migrated = true
			if next := r.index.Cell(target, FieldMigrationSource); strings.TrimSpace(next) != "" {
				r.diag.Report(r.lineEvent(EventMigrationChainTruncated, item, next))
			}
		} else {
			r.diag.Report(r.lineEvent(EventMigrationMiss, item, source))
		}
	}

	// =========================================================================
	// STEP 3: SET OR SINGLE
	// =========================================================================

	id.JAN = r.index.Cell(row, FieldJAN)
	id.SetMultiplier = parseMultiplier(r.index.Cell(row, FieldSetCount))
	if name := r.index.Cell(row, FieldProductName); name != "" {
		id.ProductName = name
	}

	if strings.TrimSpace(r.index.Cell(row, FieldParentASIN2)) != "" {
		id.HasParent = true
		id.ParentJAN = r.index.Cell(row, FieldParentJAN2)
		id.ParentSetMultiplier = parseMultiplier(r.index.Cell(row, FieldSetCount2))
		id.ParentQuantity = id.ParentSetMultiplier * id.OrderQuantity
	}

	id.SingleUnitCount = id.SetMultiplier * id.OrderQuantity
	return id
}

func (r *Resolver) lineEvent(kind EventKind, item types.OrderLineItem, value string) Event {
	sku := item.ProductSKU
	if sku == "" {
		sku = item.SKUManagementNumber
	}
	return Event{
		Kind:      kind,
		SKU:       sku,
		OrderID:   item.OrderID,
		SourceRow: item.SourceRow,
		Value:     value,
	}
}
