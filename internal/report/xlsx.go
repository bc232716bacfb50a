package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the picking workbook.
const (
	SheetPicking = "ピッキングリスト"
	SheetMulti   = "複数個注文"
	SheetOrders  = "注文リスト"
)

// Layout of the picking sheet. The summary block sits above the table.
const (
	pickingHeaderRow = 6
	pickingFirstRow  = pickingHeaderRow + 1
)

var (
	pickingHeaders = []interface{}{
		"仕分け", "ピッキング", "セルフ", "ダブル", "商品名", "JAN", "親JAN", "数量", "親数量", "ケース", "1個", "その他",
	}
	multiHeaders = []interface{}{
		"GoQ管理番号", "送付先氏名", "商品名", "個数", "JANコード", "チェック",
	}
	orderHeaders = []interface{}{
		"注文日時", "配送方法", "GoQ管理番号", "受注番号", "送付先氏名", "商品名", "注文数", "単品総数", "JANコード", "商品コード", "対象外",
	}
)

// styles holds the style IDs registered on one workbook.
type styles struct {
	title    int
	header   int
	cell     int
	total    int
	excluded int
}

// WriteXLSX writes the picking workbook to w.
//
// SHEETS:
//   - ピッキングリスト: summary block, one row per picking row with JAN and
//     parent JAN in display form, total footer
//   - 複数個注文: the multiple-quantity list
//   - 注文リスト: every order line with master JAN and unit total,
//     excluded lines greyed out
func WriteXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := f.SetSheetName(f.GetSheetName(0), SheetPicking); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetMulti, SheetOrders} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	if err := writePickingSheet(f, doc, st); err != nil {
		return fmt.Errorf("failed to write %s: %w", SheetPicking, err)
	}
	if err := writeMultiSheet(f, doc, st); err != nil {
		return fmt.Errorf("failed to write %s: %w", SheetMulti, err)
	}
	if err := writeOrderSheet(f, doc, st); err != nil {
		return fmt.Errorf("failed to write %s: %w", SheetOrders, err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return st, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return st, err
	}
	if st.cell, err = f.NewStyle(&excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
	}); err != nil {
		return st, err
	}
	if st.total, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 14},
		Border: border,
	}); err != nil {
		return st, err
	}
	st.excluded, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Color: "808080", Strike: true},
		Border: border,
	})
	return st, err
}

// =============================================================================
// PICKING SHEET
// =============================================================================

func writePickingSheet(f *excelize.File, doc *Document, st styles) error {
	sheet := SheetPicking

	method := doc.Summary.ShippingMethod
	if len(doc.Summary.ShippingNotes) > 0 {
		method += " - " + strings.Join(doc.Summary.ShippingNotes, ", ") + " - "
	}

	block := [][]interface{}{
		{"ピッキングリスト"},
		{"配送方法", method},
		{"作成日時", doc.GeneratedAt.Format("2006/01/02 15:04:05")},
		{"注文件数", doc.Summary.OrderCount, "単品総数", doc.TotalSingleUnits},
		{"実施者", "", "確認者", ""},
	}
	for i, row := range block {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
		return err
	}

	if err := setRow(f, sheet, pickingHeaderRow, pickingHeaders); err != nil {
		return err
	}

	for i, r := range doc.Rows {
		parentJAN := ""
		if r.IsSet() {
			parentJAN = "(" + doc.ShortJAN(r.ParentJAN) + ")"
		}
		var parentQty interface{} = ""
		if r.HasParentQuantity && r.ParentQuantity > 0 {
			parentQty = r.ParentQuantity
		}
		row := []interface{}{
			"", "", "", "",
			r.ProductName,
			doc.ShortJAN(r.JAN),
			parentJAN,
			r.SingleUnitCount,
			parentQty,
			"", "", "",
		}
		if err := setRow(f, sheet, pickingFirstRow+i, row); err != nil {
			return err
		}
	}

	footer := pickingFirstRow + len(doc.Rows)
	total := make([]interface{}, len(pickingHeaders))
	for i := range total {
		total[i] = ""
	}
	total[0] = "合計"
	total[7] = doc.TotalSingleUnits
	if err := setRow(f, sheet, footer, total); err != nil {
		return err
	}

	if err := styleRange(f, sheet, pickingHeaderRow, pickingHeaderRow, len(pickingHeaders), st.header); err != nil {
		return err
	}
	if err := styleRange(f, sheet, pickingFirstRow, footer-1, len(pickingHeaders), st.cell); err != nil {
		return err
	}
	if err := styleRange(f, sheet, footer, footer, len(pickingHeaders), st.total); err != nil {
		return err
	}

	return setWidths(f, sheet, map[string]float64{"A": 7, "B": 9, "C": 7, "D": 7, "E": 48, "F": 8, "G": 9, "H": 7, "I": 7})
}

// =============================================================================
// MULTIPLE-QUANTITY SHEET
// =============================================================================

func writeMultiSheet(f *excelize.File, doc *Document, st styles) error {
	sheet := SheetMulti
	if err := setRow(f, sheet, 1, multiHeaders); err != nil {
		return err
	}

	lines := doc.MultiQuantityLines()
	for i, l := range lines {
		row := []interface{}{
			l.Item.GroupID,
			l.Item.RecipientName,
			l.Item.ProductName,
			numberOrText(l.DisplayQuantity()),
			tail(l.Resolved.JAN, 4),
			"",
		}
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	if err := styleRange(f, sheet, 1, 1, len(multiHeaders), st.header); err != nil {
		return err
	}
	if err := styleRange(f, sheet, 2, len(lines)+1, len(multiHeaders), st.cell); err != nil {
		return err
	}
	return setWidths(f, sheet, map[string]float64{"A": 14, "B": 18, "C": 48, "D": 6, "E": 10, "F": 8})
}

// =============================================================================
// ORDER SHEET
// =============================================================================

func writeOrderSheet(f *excelize.File, doc *Document, st styles) error {
	sheet := SheetOrders
	if err := setRow(f, sheet, 1, orderHeaders); err != nil {
		return err
	}
	if err := styleRange(f, sheet, 1, 1, len(orderHeaders), st.header); err != nil {
		return err
	}

	for i, l := range doc.Lines {
		excluded := ""
		if !l.Eligible {
			excluded = "対象外"
		}
		row := []interface{}{
			l.Item.OrderedAt,
			l.Item.ShippingMethod,
			l.Item.GroupID,
			l.Item.OrderID,
			l.Item.RecipientName,
			l.Item.ProductName,
			numberOrText(l.Item.OrderQuantity),
			l.Resolved.SingleUnitCount,
			tail(l.Resolved.JAN, 4),
			l.Item.ProductCode,
			excluded,
		}
		rowNum := i + 2
		if err := setRow(f, sheet, rowNum, row); err != nil {
			return err
		}
		style := st.cell
		if !l.Eligible {
			style = st.excluded
		}
		if err := styleRange(f, sheet, rowNum, rowNum, len(orderHeaders), style); err != nil {
			return err
		}
	}

	return setWidths(f, sheet, map[string]float64{"A": 18, "C": 14, "D": 20, "E": 18, "F": 48})
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// styleRange applies style to columns 1..cols of rows from..to. An empty
// range is a no-op.
func styleRange(f *excelize.File, sheet string, from, to, cols, style int) error {
	if to < from {
		return nil
	}
	start, err := excelize.CoordinatesToCellName(1, from)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, to)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, style)
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

// numberOrText writes integral quantities as numbers so they can be summed
// in the workbook.
func numberOrText(s string) interface{} {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return s
}
