// =============================================================================
// smartpick - Product Master Sources
// =============================================================================
//
// The product master is maintained as a spreadsheet. Depending on the shop it
// lives in a local workbook, a Google Sheet, a CSV dump or a snapshot object
// in Cloud Storage. Every source returns the same thing: the raw sheet as
// rows of cells, header row first, untouched. Column resolution is the
// picking engine's job.
//
// SOURCES:
//   xlsx   : local workbook (excelize)
//   csv    : local CSV file
//   sheets : Google Sheets API v4
//   gcs    : XLSX or CSV object in a Cloud Storage bucket
//
// =============================================================================

package mastersheet

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/types"
)

var (
	// ErrEmptyTable is returned when a source yields no rows at all.
	ErrEmptyTable = errors.New("master table is empty")

	// ErrUnknownSource is returned by New for an unsupported source kind.
	ErrUnknownSource = errors.New("unknown master source")
)

// Source fetches one snapshot of the product master table.
type Source interface {
	Fetch(ctx context.Context) (types.MasterTable, error)

	// Describe names the source for logs.
	Describe() string
}

// New builds the source configured in cfg.
func New(cfg config.MasterConfig) (Source, error) {
	switch cfg.Source {
	case config.SourceXLSX:
		return &XLSXSource{Path: cfg.Path, Sheet: cfg.Sheet}, nil

	case config.SourceCSV:
		return &CSVSource{Path: cfg.Path, Encoding: cfg.Encoding}, nil

	case config.SourceSheets:
		var opts []option.ClientOption
		if cfg.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
		} else if cfg.APIKey != "" {
			opts = append(opts, option.WithAPIKey(cfg.APIKey))
		}
		return NewSheetsSource(cfg.SpreadsheetID, cfg.Sheet, opts...), nil

	case config.SourceGCS:
		return NewGCSSource(cfg.Bucket, cfg.Object, cfg.Encoding), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}

// checkTable turns a table without rows into ErrEmptyTable.
func checkTable(t types.MasterTable, from string) (types.MasterTable, error) {
	if len(t) == 0 {
		return nil, fmt.Errorf("%s: %w", from, ErrEmptyTable)
	}
	return t, nil
}
