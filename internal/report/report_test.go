package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/smartpick/picklist/internal/orders"
	"github.com/smartpick/picklist/internal/picking"
	"github.com/smartpick/picklist/internal/types"
)

var generated = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func testResult() *picking.Result {
	return &picking.Result{
		Rows: []picking.PickingAggregateRow{
			{ProductName: "ボトル", JAN: "4900000000032", OrderQuantity: 3, SingleUnitCount: 3},
			{
				ProductName: "アロマ セット", JAN: "4900000000018", ParentJAN: "4900000000001", HasParent: true,
				OrderQuantity: 2, SingleUnitCount: 2, ParentQuantity: 6, HasParentQuantity: true,
			},
		},
		TotalSingleUnits: 8,
		Lines: []picking.LineResult{
			{
				Item:          types.OrderLineItem{GroupID: "G1", OrderID: "O1", ProductName: "ボトル", ProductSKU: "SKU-ONE", OrderQuantity: "3", RecipientName: "山田"},
				Resolved:      picking.ResolvedIdentity{JAN: "4900000000032", SingleUnitCount: 3},
				Eligible:      true,
				MultiQuantity: true,
			},
			{
				Item:     types.OrderLineItem{GroupID: "G2", OrderID: "O2", ProductName: "アロマ セット", ProductSKU: "SKU-SET", OrderQuantity: "2"},
				Resolved: picking.ResolvedIdentity{JAN: "4900000000018", SingleUnitCount: 2},
				Eligible: true,
			},
			{
				Item:     types.OrderLineItem{GroupID: "G2", OrderID: "O3", ProductName: "不明 & 他", ProductSKU: "NOPE", OrderQuantity: "1"},
				Eligible: false,
			},
		},
		ExcludedCount: 1,
	}
}

func testDocument(sortByName bool) *Document {
	summary := orders.Summary{OrderCount: 2, ShippingMethod: "ネコポス", ShippingNotes: []string{"午前中"}, LineCount: 3}
	return NewDocument(testResult(), summary, Options{
		Source:       "orders.csv",
		Profile:      "goq",
		SortByName:   sortByName,
		JANOverrides: map[string]string{"4900000000001": "SET-X"},
		GeneratedAt:  generated,
	})
}

func TestNewDocument(t *testing.T) {
	doc := testDocument(false)
	assert.Equal(t, "ボトル", doc.Rows[0].ProductName)
	assert.Equal(t, 8, doc.TotalSingleUnits)
	assert.Equal(t, 1, doc.ExcludedCount)
	assert.Len(t, doc.MultiQuantityLines(), 1)
	assert.Equal(t, "0032", doc.ShortJAN("4900000000032"))
	assert.Equal(t, "ET-X", doc.ShortJAN("4900000000001"))

	sorted := testDocument(true)
	assert.Equal(t, "アロマ セット", sorted.Rows[0].ProductName)

	// sorting never touches the result
	assert.Equal(t, "ボトル", testResult().Rows[0].ProductName)
}

func TestGenerateXML(t *testing.T) {
	data, err := GenerateXML(testDocument(false), DefaultGenerateOptions())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<pickingList source=\"orders.csv\" profile=\"goq\""))
	assert.Contains(t, out, "    <shippingNote>午前中</shippingNote>\n")
	assert.Contains(t, out, "  <item n=\"2\">\n")
	assert.Contains(t, out, "<parentJanDisplay>ET-X</parentJanDisplay>")
	assert.Contains(t, out, "<parentQuantity>6</parentQuantity>")
	assert.Contains(t, out, "<totalSingleUnits>8</totalSingleUnits>")
	assert.Contains(t, out, "<recipientName>山田</recipientName>")
	assert.Equal(t, 1, strings.Count(out, "<parentJan>"))
}

func TestGenerateXMLEscapesAndSelfCloses(t *testing.T) {
	doc := testDocument(false)
	doc.Rows = append(doc.Rows, picking.PickingAggregateRow{ProductName: "A&B <x>", SingleUnitCount: 1})

	opts := DefaultGenerateOptions()
	opts.IncludeXMLDeclaration = false
	data, err := GenerateXML(doc, opts)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "<pickingList"))
	assert.Contains(t, string(data), "<productName>A&amp;B &lt;x&gt;</productName>")
	assert.Contains(t, string(data), "<jan/>")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testDocument(false)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPicking, SheetMulti, SheetOrders}, f.GetSheetList())

	cell := func(sheet, axis string) string {
		v, err := f.GetCellValue(sheet, axis)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "ネコポス - 午前中 - ", cell(SheetPicking, "B2"))
	assert.Equal(t, "2024/05/01 09:00:00", cell(SheetPicking, "B3"))
	assert.Equal(t, "商品名", cell(SheetPicking, "E6"))
	assert.Equal(t, "ボトル", cell(SheetPicking, "E7"))
	assert.Equal(t, "0032", cell(SheetPicking, "F7"))
	assert.Equal(t, "", cell(SheetPicking, "G7"))
	assert.Equal(t, "(ET-X)", cell(SheetPicking, "G8"))
	assert.Equal(t, "6", cell(SheetPicking, "I8"))
	assert.Equal(t, "合計", cell(SheetPicking, "A9"))
	assert.Equal(t, "8", cell(SheetPicking, "H9"))

	assert.Equal(t, "G1", cell(SheetMulti, "A2"))
	assert.Equal(t, "3", cell(SheetMulti, "D2"))
	assert.Equal(t, "0032", cell(SheetMulti, "E2"))
	assert.Equal(t, "", cell(SheetMulti, "A3"))

	assert.Equal(t, "O3", cell(SheetOrders, "D4"))
	assert.Equal(t, "対象外", cell(SheetOrders, "K4"))
	assert.Equal(t, "", cell(SheetOrders, "K2"))
}

func TestWriteEmptyDocument(t *testing.T) {
	doc := NewDocument(&picking.Result{}, orders.Summary{}, Options{GeneratedAt: generated})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, doc))

	data, err := GenerateXML(doc, DefaultGenerateOptions())
	require.NoError(t, err)
	assert.Contains(t, string(data), "<totalSingleUnits>0</totalSingleUnits>")
	assert.NotContains(t, string(data), "multiQuantityOrders")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	doc := testDocument(true)

	xlsxPath := filepath.Join(dir, "out.xlsx")
	require.NoError(t, Write(FormatXLSX, xlsxPath, doc))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	f.Close()

	xmlPath := filepath.Join(dir, "out.xml")
	require.NoError(t, Write(FormatXML, xmlPath, doc))
	data, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<pickingList")

	badPath := filepath.Join(dir, "out.pdf")
	assert.Error(t, Write("pdf", badPath, doc))
	assert.NoFileExists(t, badPath)

	assert.Error(t, Write(FormatXML, filepath.Join(dir, "missing", "out.xml"), doc))
}
