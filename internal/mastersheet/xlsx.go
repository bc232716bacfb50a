package mastersheet

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/smartpick/picklist/internal/types"
)

// XLSXSource reads the master from a local workbook.
type XLSXSource struct {
	Path string

	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string
}

// Fetch implements Source.
func (s *XLSXSource) Fetch(ctx context.Context) (types.MasterTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master workbook: %w", err)
	}
	defer f.Close()

	return ReadXLSX(f, s.Sheet)
}

// Describe implements Source.
func (s *XLSXSource) Describe() string {
	return "xlsx:" + s.Path
}

// ReadXLSX reads every row of one worksheet. Trailing empty cells of a row
// are dropped by excelize; lookups treat missing cells as empty.
func ReadXLSX(r io.Reader, sheet string) (types.MasterTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets: %w", ErrEmptyTable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}
	return checkTable(types.MasterTable(rows), "sheet "+sheet)
}
