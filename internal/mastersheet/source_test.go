package mastersheet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/types"
)

func workbook(t *testing.T, sheet string, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t, "マスタ", [][]string{
		{"JAN", "商品SKU"},
		{"4900000000018", "S1"},
	})

	table, err := ReadXLSX(bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Equal(t, types.MasterTable{{"JAN", "商品SKU"}, {"4900000000018", "S1"}}, table)

	_, err = ReadXLSX(bytes.NewReader(data), "missing")
	assert.Error(t, err)
}

func TestReadXLSXEmpty(t *testing.T) {
	data := workbook(t, "Sheet1", nil)

	_, err := ReadXLSX(bytes.NewReader(data), "")
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestXLSXSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.xlsx")
	require.NoError(t, os.WriteFile(path, workbook(t, "Sheet1", [][]string{{"a"}, {"b"}}), 0644))

	src := &XLSXSource{Path: path}
	table, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 2)
	assert.Equal(t, "xlsx:"+path, src.Describe())

	_, err = (&XLSXSource{Path: path + ".missing"}).Fetch(context.Background())
	assert.Error(t, err)
}

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("JAN,商品SKU\n 490 ,S1\n"), "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, types.MasterTable{{"JAN", "商品SKU"}, {" 490 ", "S1"}}, table)

	_, err = ReadCSV(strings.NewReader(""), "UTF-8")
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestCSVSourceFetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0644))

	table, err := (&CSVSource{Path: path, Encoding: "UTF-8"}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", table[1][1])
}

func TestSheetsSourceFetch(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.Contains(r.URL.Path, "/values/"):
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"range": "Master!A1:B2",
				"values": [][]interface{}{
					{"JAN", "商品SKU"},
					{"4900000000018", "S1", nil},
				},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"sheets": []map[string]interface{}{
					{"properties": map[string]interface{}{"title": "Master"}},
				},
			})
		}
	}))
	defer srv.Close()

	src := NewSheetsSource("sheet-123", "",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)

	table, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.MasterTable{{"JAN", "商品SKU"}, {"4900000000018", "S1", ""}}, table)
	require.Len(t, gotPaths, 2)
	assert.Contains(t, gotPaths[1], "/values/Master")
	assert.Equal(t, "sheets:sheet-123", src.Describe())
}

func TestSheetsSourceEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"range":"A1:A1"}`))
	}))
	defer srv.Close()

	src := NewSheetsSource("sheet-123", "A:W",
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)

	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestDecodeObject(t *testing.T) {
	table, err := decodeObject("snapshots/master.CSV", []byte("a,b\n"), "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, types.MasterTable{{"a", "b"}}, table)

	table, err = decodeObject("snapshots/master.xlsx", workbook(t, "Sheet1", [][]string{{"x"}}), "")
	require.NoError(t, err)
	assert.Equal(t, types.MasterTable{{"x"}}, table)
}

func TestNew(t *testing.T) {
	tests := []struct {
		cfg  config.MasterConfig
		want string
	}{
		{config.MasterConfig{Source: config.SourceXLSX, Path: "m.xlsx"}, "xlsx:m.xlsx"},
		{config.MasterConfig{Source: config.SourceCSV, Path: "m.csv"}, "csv:m.csv"},
		{config.MasterConfig{Source: config.SourceSheets, SpreadsheetID: "id", APIKey: "k"}, "sheets:id"},
		{config.MasterConfig{Source: config.SourceGCS, Bucket: "b", Object: "o.xlsx"}, "gs://b/o.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.cfg.Source, func(t *testing.T) {
			src, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.Describe())
		})
	}

	_, err := New(config.MasterConfig{Source: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownSource)
}
