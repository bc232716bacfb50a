package picking

import (
	"strings"

	"github.com/smartpick/picklist/internal/types"
)

// MasterIndex is the per-recompute view of the master table: resolved
// columns plus case-folded lookups over the SKU and existence columns and an
// exact lookup over the migration target column. Building it costs one pass
// over the table; every order line is then resolved without rescanning.
//
// Only data rows (everything after the header) take part in lookups.
type MasterIndex struct {
	rows    [][]string
	columns Columns

	bySKU    map[string]int
	exists   map[string]struct{}
	byTarget map[string]int
}

// NewMasterIndex resolves the header row against spec and indexes the data
// rows. A nil diag discards events. An empty table yields an index where
// every lookup misses.
func NewMasterIndex(table types.MasterTable, spec ColumnSpec, diag Diagnostics) *MasterIndex {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	if spec == nil {
		spec = DefaultColumnSpec()
	}

	idx := &MasterIndex{
		rows:     table.DataRows(),
		bySKU:    make(map[string]int),
		exists:   make(map[string]struct{}),
		byTarget: make(map[string]int),
	}
	if len(table) == 0 {
		idx.columns = fallbackColumns(spec)
		return idx
	}
	idx.columns = resolveColumns(table.Header(), spec, diag)

	skuCol := idx.columns.Index(FieldSKU)
	existsCol := idx.columns.Index(FieldExists)
	targetCol := idx.columns.Index(FieldMigrationTarget)

	for i, row := range idx.rows {
		if v := cell(row, skuCol); v != "" {
			key := strings.ToLower(v)
			if _, seen := idx.bySKU[key]; !seen {
				idx.bySKU[key] = i
			}
		}
		if v := cell(row, existsCol); v != "" {
			idx.exists[strings.ToLower(v)] = struct{}{}
		}
		if v := cell(row, targetCol); v != "" {
			if _, seen := idx.byTarget[v]; !seen {
				idx.byTarget[v] = i
			}
		}
	}
	return idx
}

// fallbackColumns is used for an empty table, where there is no header.
func fallbackColumns(spec ColumnSpec) Columns {
	cols := make(Columns, len(spec))
	for _, rule := range spec {
		cols[rule.Field] = rule.Fallback
	}
	return cols
}

// Columns returns the resolved column table.
func (m *MasterIndex) Columns() Columns {
	return m.columns
}

// Rows returns the data rows (header excluded).
func (m *MasterIndex) Rows() [][]string {
	return m.rows
}

// Len returns the number of data rows.
func (m *MasterIndex) Len() int {
	return len(m.rows)
}

// Lookup returns the first data row whose SKU cell equals id, compared
// case-insensitively. Empty ids never match.
func (m *MasterIndex) Lookup(id string) ([]string, bool) {
	if id == "" {
		return nil, false
	}
	i, ok := m.bySKU[strings.ToLower(id)]
	if !ok {
		return nil, false
	}
	return m.rows[i], true
}

// lookupTarget returns the first data row whose migration target cell equals
// key exactly.
func (m *MasterIndex) lookupTarget(key string) ([]string, bool) {
	i, ok := m.byTarget[key]
	if !ok {
		return nil, false
	}
	return m.rows[i], true
}

// Cell returns the value of field in row, or "" when the row is too short.
func (m *MasterIndex) Cell(row []string, f Field) string {
	return cell(row, m.columns.Index(f))
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
