package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFile reads an uploaded CSV or workbook into a header and data rows.
// The first non-blank row is the header. Any failure is structural and
// wraps importer.ErrStructural.
func ParseFile(fileName string, data []byte) (importer.ParsedFile, error) {
	var (
		records []record
		err     error
	)

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		records, err = readCSV(data)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		records, err = readWorkbook(data)
	default:
		return importer.ParsedFile{}, importer.ErrUnsupportedFile
	}
	if err != nil {
		return importer.ParsedFile{}, err
	}

	return buildParsedFile(fileName, records)
}

// record is one source row with the 1-based line it starts on.
type record struct {
	line  int
	cells []string
}

// readCSV keeps each record's own line number; the reader skips empty
// lines, so the record index alone drifts from the file.
func readCSV(data []byte) ([]record, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var records []record
	for {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", importer.ErrUnreadableFile, err)
		}
		line, _ := r.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}
	return records, nil
}

func readWorkbook(data []byte) ([]record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", importer.ErrUnreadableFile, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, importer.ErrNoHeaderRow
	}

	// Raw values keep date cells as serial numbers and time cells as
	// fractions of a day, whatever number format the sheet applies.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", importer.ErrUnreadableFile, err)
	}

	records := make([]record, len(rows))
	for i, cells := range rows {
		records[i] = record{line: i + 1, cells: cells}
	}
	return records, nil
}

// buildParsedFile widens the header to the widest data row so no cell is
// dropped. Blank header cells are named after their spreadsheet column.
func buildParsedFile(fileName string, records []record) (importer.ParsedFile, error) {
	parsed := importer.ParsedFile{FileName: fileName}

	headerAt := -1
	for i, rec := range records {
		if isBlank(rec.cells) {
			continue
		}
		parsed.Headers = trimTrailingBlank(trimCells(rec.cells))
		headerAt = i
		break
	}
	if headerAt == -1 {
		return importer.ParsedFile{}, importer.ErrNoHeaderRow
	}

	var rows []importer.Row
	width := len(parsed.Headers)
	for _, rec := range records[headerAt+1:] {
		if isBlank(rec.cells) {
			continue
		}
		cells := trimTrailingBlank(trimCells(rec.cells))
		width = max(width, len(cells))
		rows = append(rows, importer.Row{Number: rec.line, Cells: cells})
	}

	parsed.Headers = padCells(parsed.Headers, width)
	for i, h := range parsed.Headers {
		if h != "" {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return importer.ParsedFile{}, fmt.Errorf("%w: %v", importer.ErrUnreadableFile, err)
		}
		parsed.Headers[i] = "Column " + name
	}
	for i := range rows {
		rows[i].Cells = padCells(rows[i].Cells, width)
	}
	parsed.Rows = rows

	return parsed, nil
}

func padCells(cells []string, width int) []string {
	if len(cells) >= width {
		return cells
	}
	return append(cells, make([]string, width-len(cells))...)
}

func trimCells(record []string) []string {
	cells := make([]string, len(record))
	for i, c := range record {
		cells[i] = strings.TrimSpace(strings.TrimPrefix(c, string(utf8BOM)))
	}
	return cells
}

func trimTrailingBlank(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
