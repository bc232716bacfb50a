package mastersheet

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/smartpick/picklist/internal/types"
)

// SheetsSource reads the master from a Google Sheet.
type SheetsSource struct {
	SpreadsheetID string

	// Range is an A1 range such as "マスタ!A:W". Empty means the whole
	// first sheet.
	Range string

	opts []option.ClientOption
}

// NewSheetsSource creates a source. opts carry credentials or, in tests,
// the endpoint.
func NewSheetsSource(spreadsheetID, rng string, opts ...option.ClientOption) *SheetsSource {
	return &SheetsSource{SpreadsheetID: spreadsheetID, Range: rng, opts: opts}
}

// Fetch implements Source. Cells are read as formatted values, the way the
// sheet displays them.
func (s *SheetsSource) Fetch(ctx context.Context) (types.MasterTable, error) {
	srv, err := sheets.NewService(ctx, s.opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	rng := s.Range
	if rng == "" {
		rng, err = firstSheetTitle(ctx, srv, s.SpreadsheetID)
		if err != nil {
			return nil, err
		}
	}

	resp, err := srv.Spreadsheets.Values.Get(s.SpreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet values %s: %w", rng, err)
	}

	table := make(types.MasterTable, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}
		table = append(table, cells)
	}
	return checkTable(table, "spreadsheet "+s.SpreadsheetID)
}

// Describe implements Source.
func (s *SheetsSource) Describe() string {
	return "sheets:" + s.SpreadsheetID
}

func firstSheetTitle(ctx context.Context, srv *sheets.Service, id string) (string, error) {
	ss, err := srv.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read spreadsheet %s: %w", id, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets: %w", id, ErrEmptyTable)
	}
	return ss.Sheets[0].Properties.Title, nil
}
