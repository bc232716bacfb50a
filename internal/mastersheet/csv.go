package mastersheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/csvparser"
	"github.com/smartpick/picklist/internal/types"
)

// CSVSource reads the master from a local CSV export of the sheet.
type CSVSource struct {
	Path     string
	Encoding string
}

// Fetch implements Source.
func (s *CSVSource) Fetch(ctx context.Context) (types.MasterTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open master CSV: %w", err)
	}
	defer f.Close()

	return ReadCSV(f, s.Encoding)
}

// Describe implements Source.
func (s *CSVSource) Describe() string {
	return "csv:" + s.Path
}

// ReadCSV reads every record of a comma separated master. Cells are kept
// verbatim.
func ReadCSV(r io.Reader, encoding string) (types.MasterTable, error) {
	records, err := csvparser.ReadRecords(r, config.CSVSettings{Delimiter: ",", Encoding: encoding})
	if errors.Is(err, csvparser.ErrEmptyFile) {
		return nil, fmt.Errorf("master CSV: %w", ErrEmptyTable)
	}
	if err != nil {
		return nil, err
	}
	return types.MasterTable(records), nil
}
