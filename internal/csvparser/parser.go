// =============================================================================
// smartpick - CSV Parser Module
// =============================================================================
//
// This module reads order exports and CSV master tables. Order exports from
// Japanese shop systems are usually Shift_JIS encoded; the parser decodes
// them before the CSV reader sees a single byte.
//
// FEATURES:
//   - Shift_JIS, EUC-JP and UTF-8 (with or without BOM) input
//   - Configurable delimiter
//   - Multi-line headers, custom data start row
//   - Lenient quoting and ragged rows
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/smartpick/picklist/internal/config"
)

// ErrEmptyFile is returned when the input holds no records at all.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed CSV file.
type CSVData struct {
	// Headers are the merged header names. Empty headers become Column_N.
	Headers []string

	// Rows are the data rows as header → value maps. Values are trimmed.
	Rows []map[string]string

	// RowNumbers holds the 1-based record number of each entry of Rows.
	RowNumbers []int

	// SourceFile is the path or name the data was read from.
	SourceFile string
}

// RowCount returns the number of data rows.
func (d *CSVData) RowCount() int {
	return len(d.Rows)
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV settings of the matching profile.
//
// RETURNS:
//   - The parsed data.
//   - ErrEmptyFile, or an error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, filePath, settings)
}

// ParseReader is Parse over any reader. name is recorded as SourceFile.
func ParseReader(r io.Reader, name string, settings config.CSVSettings) (*CSVData, error) {
	allRows, err := ReadRecords(r, settings)
	if err != nil {
		return nil, err
	}

	headerRows := settings.HeaderRows
	if headerRows <= 0 {
		headerRows = 1
	}

	headers, err := extractHeaders(allRows, headerRows)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	data := &CSVData{
		Headers:    headers,
		SourceFile: name,
	}
	extractDataRows(data, allRows, headerRows, settings.DataStartRow)
	return data, nil
}

// ReadRecords decodes r and returns every record as-is, header rows
// included. Used directly for CSV master tables, which are addressed by
// column position.
func ReadRecords(r io.Reader, settings config.CSVSettings) ([][]string, error) {
	dec, err := decoderFor(settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(transform.NewReader(bufio.NewReader(r), dec.NewDecoder()))
	configureReader(csvReader, settings)

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	return records, nil
}

// decoderFor maps an encoding name to its decoder. The UTF-8 decoder drops a
// leading byte order mark.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_")) {
	case "", "UTF_8", "UTF8":
		return unicode.UTF8BOM, nil
	case "SHIFT_JIS", "SJIS", "CP932", "WINDOWS_31J":
		return japanese.ShiftJIS, nil
	case "EUC_JP", "EUCJP":
		return japanese.EUCJP, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Exports are not always rectangular and quote loosely.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}

// extractHeaders extracts and merges headers.
//
// MULTI-LINE HEADER HANDLING:
//   Row 1: "送付先", "",     "商品"
//   Row 2: "氏名",   "住所", "SKU"
//   Result: "送付先 氏名", "住所", "商品 SKU"
func extractHeaders(allRows [][]string, headerRows int) ([]string, error) {
	if len(allRows) < headerRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}

	if headerRows == 1 {
		return cleanHeaders(allRows[0]), nil
	}

	maxCols := 0
	for i := 0; i < headerRows; i++ {
		if len(allRows[i]) > maxCols {
			maxCols = len(allRows[i])
		}
	}

	headers := make([]string, maxCols)
	for col := 0; col < maxCols; col++ {
		var parts []string
		for row := 0; row < headerRows; row++ {
			if col < len(allRows[row]) {
				if value := strings.TrimSpace(allRows[row][col]); value != "" {
					parts = append(parts, value)
				}
			}
		}
		headers[col] = strings.Join(parts, " ")
	}

	return cleanHeaders(headers), nil
}

// cleanHeaders trims header values and names empty ones by position.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// extractDataRows converts data records to maps, skipping blank records.
// When a header name repeats, the leftmost column wins.
func extractDataRows(data *CSVData, allRows [][]string, headerRows, dataStartRow int) {
	startIndex := dataStartRow - 1
	if startIndex < headerRows {
		startIndex = headerRows
	}
	if startIndex >= len(allRows) {
		data.Rows = []map[string]string{}
		return
	}

	data.Rows = make([]map[string]string, 0, len(allRows)-startIndex)
	for rowIndex := startIndex; rowIndex < len(allRows); rowIndex++ {
		row := allRows[rowIndex]
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(data.Headers))
		for colIndex, header := range data.Headers {
			if _, seen := rowMap[header]; seen {
				continue
			}
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		data.Rows = append(data.Rows, rowMap)
		data.RowNumbers = append(data.RowNumbers, rowIndex+1)
	}
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// HasHeader reports whether the data carries the given header.
func (d *CSVData) HasHeader(header string) bool {
	for _, h := range d.Headers {
		if h == header {
			return true
		}
	}
	return false
}
