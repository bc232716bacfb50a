package picking

// Field is a semantic column of the product master table.
type Field string

const (
	FieldSKU             Field = "sku"
	FieldJAN             Field = "jan"
	FieldParentASIN      Field = "parentAsin"
	FieldSetCount        Field = "setCount"
	FieldParentASIN2     Field = "parentAsin2"
	FieldParentJAN2      Field = "parentJan2"
	FieldSetCount2       Field = "setCount2"
	FieldChildASIN       Field = "childAsin"
	FieldProductName     Field = "productName"
	FieldMigrationSource Field = "migrationSource"
	FieldMigrationTarget Field = "migrationTarget"

	// FieldExists is the column the eligibility check compares against. It
	// is positional by default (column Q) and distinct from FieldSKU even
	// though both default to the same index.
	FieldExists Field = "exists"
)

// ColumnRule says how one field is located in the header row.
type ColumnRule struct {
	Field Field

	// Label is the exact header text. Empty means the column is always
	// addressed by Fallback.
	Label string

	// Fallback is the 0-based column used when Label is absent.
	Fallback int

	// PreferLast picks the rightmost occurrence of Label instead of the
	// leftmost one. The master sheet carries the product name label twice;
	// the right-hand one sits next to the SKU column and is the one wanted.
	PreferLast bool
}

// ColumnSpec is the declarative field → label → fallback table.
type ColumnSpec []ColumnRule

// DefaultColumnSpec returns the layout of the product master sheet.
func DefaultColumnSpec() ColumnSpec {
	return ColumnSpec{
		{Field: FieldSKU, Label: "商品SKU", Fallback: 16},
		{Field: FieldJAN, Label: "JAN", Fallback: 5},
		{Field: FieldParentASIN, Label: "親ASIN", Fallback: 4},
		{Field: FieldSetCount, Label: "SET数", Fallback: 6},
		{Field: FieldParentASIN2, Label: "親ASIN-2", Fallback: 7},
		{Field: FieldParentJAN2, Label: "親JAN-2", Fallback: 8},
		{Field: FieldSetCount2, Label: "SET-2", Fallback: 9},
		{Field: FieldChildASIN, Label: "子ASIN", Fallback: 10},
		{Field: FieldProductName, Label: "親", Fallback: 17, PreferLast: true},
		{Field: FieldMigrationSource, Label: "引継ぎ元", Fallback: 21},
		{Field: FieldMigrationTarget, Label: "引継ぎ先", Fallback: 22},
		{Field: FieldExists, Fallback: 16},
	}
}

// WithOverrides returns a copy of the spec where the given rules replace the
// rules for the same field. Rules for unknown fields are appended.
func (s ColumnSpec) WithOverrides(overrides ...ColumnRule) ColumnSpec {
	out := make(ColumnSpec, len(s))
	copy(out, s)
	for _, o := range overrides {
		replaced := false
		for i := range out {
			if out[i].Field == o.Field {
				out[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, o)
		}
	}
	return out
}

// Columns is the resolved field → column index table.
type Columns map[Field]int

// Index returns the column for a field, or -1 when the field is unknown.
func (c Columns) Index(f Field) int {
	if idx, ok := c[f]; ok {
		return idx
	}
	return -1
}

// resolveColumns locates every rule in the header row. Label matching is
// exact; a label found more than once is reported but still resolved.
func resolveColumns(header []string, spec ColumnSpec, diag Diagnostics) Columns {
	cols := make(Columns, len(spec))
	for _, rule := range spec {
		if rule.Label == "" {
			cols[rule.Field] = rule.Fallback
			continue
		}

		first, last, count := -1, -1, 0
		for i, h := range header {
			if h != rule.Label {
				continue
			}
			if first == -1 {
				first = i
			}
			last = i
			count++
		}

		switch {
		case count == 0:
			diag.Report(Event{Kind: EventHeaderFallback, Field: rule.Field, Label: rule.Label, Column: rule.Fallback})
			cols[rule.Field] = rule.Fallback
		case rule.PreferLast:
			cols[rule.Field] = last
		default:
			cols[rule.Field] = first
		}

		if count > 1 {
			diag.Report(Event{Kind: EventHeaderAmbiguous, Field: rule.Field, Label: rule.Label, Column: cols[rule.Field]})
		}
	}
	return cols
}
