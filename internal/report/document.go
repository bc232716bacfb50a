// =============================================================================
// smartpick - Report Module
// =============================================================================
//
// This module renders the outcome of one recompute into printable outputs.
// Every writer works from the same Document, so the XML and the workbook
// always show the same rows in the same order.
//
// OUTPUTS:
//   - xlsx: workbook with the picking list, the multiple-quantity list and
//     the order list (see xlsx.go)
//   - xml : picking document for downstream systems (see xml.go)
//
// =============================================================================

package report

import (
	"fmt"
	"os"
	"time"

	"github.com/smartpick/picklist/internal/orders"
	"github.com/smartpick/picklist/internal/picking"
)

// Output formats.
const (
	FormatXLSX = "xlsx"
	FormatXML  = "xml"
)

// Document is one rendered picking list.
type Document struct {
	// Source is the order file the document was built from.
	Source string

	// Profile is the code of the order-export profile used.
	Profile string

	GeneratedAt time.Time

	Summary orders.Summary

	// Rows are the picking rows in print order.
	Rows []picking.PickingAggregateRow

	TotalSingleUnits int

	// Lines are all order lines in input order.
	Lines []picking.LineResult

	ExcludedCount int

	display *picking.DisplayFormatter
}

// Options controls how a Document is built.
type Options struct {
	Source  string
	Profile string

	// SortByName orders the picking rows by product name. Otherwise rows
	// keep the order in which their key was first seen.
	SortByName bool

	// JANOverrides is the JAN → display value exception table.
	JANOverrides map[string]string

	// GeneratedAt defaults to the current time.
	GeneratedAt time.Time
}

// NewDocument builds the document for one recompute.
func NewDocument(result *picking.Result, summary orders.Summary, opts Options) *Document {
	rows := result.Rows
	if opts.SortByName {
		rows = picking.SortByProductName(rows)
	}

	generated := opts.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	return &Document{
		Source:           opts.Source,
		Profile:          opts.Profile,
		GeneratedAt:      generated,
		Summary:          summary,
		Rows:             rows,
		TotalSingleUnits: result.TotalSingleUnits,
		Lines:            result.Lines,
		ExcludedCount:    result.ExcludedCount,
		display:          picking.NewDisplayFormatter(opts.JANOverrides),
	}
}

// ShortJAN returns the display form of a JAN on the picking list.
func (d *Document) ShortJAN(jan string) string {
	if d.display == nil {
		d.display = picking.NewDisplayFormatter(nil)
	}
	return d.display.ShortForm(jan)
}

// MultiQuantityLines returns the lines of the multiple-quantity list.
func (d *Document) MultiQuantityLines() []picking.LineResult {
	var out []picking.LineResult
	for _, l := range d.Lines {
		if l.MultiQuantity {
			out = append(out, l)
		}
	}
	return out
}

// Write renders doc in the given format to filePath.
func Write(format, filePath string, doc *Document) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	switch format {
	case FormatXLSX:
		err = WriteXLSX(file, doc)
	case FormatXML:
		err = WriteXML(file, doc, DefaultGenerateOptions())
	default:
		err = fmt.Errorf("unsupported output format %q", format)
	}

	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close output file: %w", closeErr)
	}
	if err != nil {
		os.Remove(filePath)
		return err
	}
	return nil
}

// tail returns the last n characters of s.
func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
