// =============================================================================
// smartpick - Picking Engine
// =============================================================================
//
// The engine ties the picking components together for one recompute:
//
//   order lines ─┐
//                ├─ MasterIndex ─┬─ Eligible ─────────┐
//   master table ┘               └─ Resolver ─┬───────┴─ Aggregator ─ rows, total
//                                             └─ MultiItemSelector ─ per-line flags
//
// A recompute is a pure function of (order lines, master table) plus the
// static configuration given to NewEngine. Nothing is cached between calls,
// so callers may run recomputes for different order files concurrently on
// one Engine as long as each call gets its own inputs.
//
// =============================================================================

package picking

import (
	"strconv"

	"github.com/smartpick/picklist/internal/types"
)

// =============================================================================
// RESULT
// =============================================================================

// LineResult is the per-order-line view used by the order list and the
// multiple-quantity list.
type LineResult struct {
	Item     types.OrderLineItem
	Resolved ResolvedIdentity

	// Eligible is false for lines excluded from the picking list.
	Eligible bool

	MultiQuantity bool

	// Selectable is true when the product SKU is on the allow-list.
	Selectable bool
}

// DisplayQuantity is the quantity printed on the multiple-quantity list:
// the unit count for allow-listed SKUs, the raw order quantity otherwise.
func (l LineResult) DisplayQuantity() string {
	if l.Selectable {
		return strconv.Itoa(l.Resolved.SingleUnitCount)
	}
	return l.Item.OrderQuantity
}

// Result is everything one recompute produces.
type Result struct {
	// Rows are the picking rows in first-seen order.
	Rows []PickingAggregateRow

	// TotalSingleUnits is the grand total over Rows.
	TotalSingleUnits int

	// Lines holds one entry per input order line, in input order.
	Lines []LineResult

	// ExcludedCount is the number of lines failing the eligibility check.
	ExcludedCount int

	// Columns is the resolved master column table.
	Columns Columns

	// MasterRows is the number of master data rows.
	MasterRows int
}

// MultiQuantityLines returns the lines flagged as multiple-quantity orders.
// All lines are considered, eligible or not.
func (r *Result) MultiQuantityLines() []LineResult {
	var out []LineResult
	for _, l := range r.Lines {
		if l.MultiQuantity {
			out = append(out, l)
		}
	}
	return out
}

// ExcludedLines returns the lines that failed the eligibility check.
func (r *Result) ExcludedLines() []LineResult {
	var out []LineResult
	for _, l := range r.Lines {
		if !l.Eligible {
			out = append(out, l)
		}
	}
	return out
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the static configuration of the picking computation.
type Engine struct {
	spec     ColumnSpec
	selector *MultiItemSelector
	diag     Diagnostics
}

// Option configures an Engine.
type Option func(*Engine)

// WithColumnSpec replaces the master column layout.
func WithColumnSpec(spec ColumnSpec) Option {
	return func(e *Engine) {
		e.spec = spec
	}
}

// WithSelectableSKUs sets the allow-list for unit-count based
// multiple-quantity classification.
func WithSelectableSKUs(skus []string) Option {
	return func(e *Engine) {
		e.selector = NewMultiItemSelector(skus)
	}
}

// WithDiagnostics sets the sink for degradation events.
func WithDiagnostics(d Diagnostics) Option {
	return func(e *Engine) {
		if d != nil {
			e.diag = d
		}
	}
}

// NewEngine creates an engine with the default column layout, an empty
// allow-list and no diagnostics unless options say otherwise.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		spec:     DefaultColumnSpec(),
		selector: NewMultiItemSelector(nil),
		diag:     NopDiagnostics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recompute builds the picking list for orders against master.
//
// Only eligible lines reach the aggregator. Every line is resolved so the
// order list and the multiple-quantity list can show master JANs and unit
// counts for excluded lines as well.
func (e *Engine) Recompute(orders []types.OrderLineItem, master types.MasterTable) *Result {
	return e.RecomputeWithDiagnostics(orders, master, nil)
}

// RecomputeWithDiagnostics is Recompute with an extra sink for this call
// only, next to the engine's own.
func (e *Engine) RecomputeWithDiagnostics(orders []types.OrderLineItem, master types.MasterTable, extra Diagnostics) *Result {
	diag := Tee(e.diag, extra)

	index := NewMasterIndex(master, e.spec, diag)
	resolver := NewResolver(index, diag)
	agg := NewAggregator()

	result := &Result{
		Lines:      make([]LineResult, 0, len(orders)),
		Columns:    index.Columns(),
		MasterRows: index.Len(),
	}

	for _, item := range orders {
		resolved := resolver.Resolve(item)
		line := LineResult{
			Item:          item,
			Resolved:      resolved,
			Eligible:      index.Eligible(item),
			MultiQuantity: e.selector.IsMultiQuantity(item, resolved),
			Selectable:    e.selector.Allowed(item.ProductSKU),
		}

		if line.Eligible {
			agg.Add(resolved)
		} else {
			result.ExcludedCount++
		}
		result.Lines = append(result.Lines, line)
	}

	result.Rows = agg.Rows()
	result.TotalSingleUnits = TotalSingleUnits(result.Rows)
	return result
}
