package importer

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseFile_CSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBF\n" +
		"Employee ID,Date,Clock In,Clock Out,\n" +
		"E001,01/02/2026,08:55,17:05\n" +
		",,,\n" +
		"E002, 2026-02-01 ,09:15\n" +
		"E003,2026-02-01,09:00,18:00\n")

	file, err := ParseFile("attendance.CSV", data)
	require.NoError(t, err)

	assert.Equal(t, "attendance.CSV", file.FileName)
	assert.Equal(t, []string{"Employee ID", "Date", "Clock In", "Clock Out"}, file.Headers)
	require.Len(t, file.Rows, 3)

	assert.Equal(t, 3, file.Rows[0].Number)
	assert.Equal(t, []string{"E001", "01/02/2026", "08:55", "17:05"}, file.Rows[0].Cells)

	assert.Equal(t, 5, file.Rows[1].Number)
	assert.Equal(t, []string{"E002", "2026-02-01", "09:15", ""}, file.Rows[1].Cells)

	assert.Equal(t, 6, file.Rows[2].Number)
	assert.Len(t, file.Rows[2].Cells, 4)
}

func TestParseFile_CSVLineNumbers(t *testing.T) {
	data := []byte("\n\n" +
		"id,date,in,out\n" +
		"\n" +
		"E001,2026-02-02,08:00,17:00\n" +
		"\n\n" +
		"E002,\"2026-02-02\",\"08:00\n\",17:00\n" +
		"E003,2026-02-02,08:00,17:00\n")

	file, err := ParseFile("lines.csv", data)
	require.NoError(t, err)
	require.Len(t, file.Rows, 3)

	assert.Equal(t, 5, file.Rows[0].Number)
	assert.Equal(t, 8, file.Rows[1].Number)
	assert.Equal(t, 10, file.Rows[2].Number)
}

func TestParseFile_KeepsCellsBeyondHeader(t *testing.T) {
	data := []byte("Employee ID,Date,Clock In,Clock Out,\n" +
		"E001,01/02/2026,08:55,17:05\n" +
		"E003,2026-02-01,09:00,18:00,WFH,site B\n")

	file, err := ParseFile("wide.csv", data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Employee ID", "Date", "Clock In", "Clock Out", "Column E", "Column F"}, file.Headers)
	require.Len(t, file.Rows, 2)
	assert.Equal(t, []string{"E001", "01/02/2026", "08:55", "17:05", "", ""}, file.Rows[0].Cells)
	assert.Equal(t, []string{"E003", "2026-02-01", "09:00", "18:00", "WFH", "site B"}, file.Rows[1].Cells)

	mapping := AutoMap(file.Headers)
	assert.True(t, mapping.IsComplete())
	col, ok := mapping.Column(importer.FieldClockOut)
	require.True(t, ok)
	assert.Equal(t, 3, col)
}

func TestParseFile_NamesBlankHeaders(t *testing.T) {
	file, err := ParseFile("gaps.csv", []byte("Employee ID,,Date\nE001,note,2026-02-02\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee ID", "Column B", "Date"}, file.Headers)
}

func TestParseFile_Workbook(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Emp ID", "Day", "Entry", "Exit"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"E001", 46054, 0.375, 0.7083333333}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{"E002", "02/02/2026", "09:00", "17:00"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	file, err := ParseFile("march.xlsx", buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, []string{"Emp ID", "Day", "Entry", "Exit"}, file.Headers)
	require.Len(t, file.Rows, 2)
	assert.Equal(t, 2, file.Rows[0].Number)
	assert.Equal(t, 4, file.Rows[1].Number)

	date, ok := CanonicalDate(file.Rows[0].Cells[1])
	require.True(t, ok)
	assert.Equal(t, "2026-02-01", date)

	clockIn, ok := NormalizeTime(file.Rows[0].Cells[2])
	require.True(t, ok)
	assert.Equal(t, "09:00", clockIn)

	clockOut, ok := NormalizeTime(file.Rows[0].Cells[3])
	require.True(t, ok)
	assert.Equal(t, "17:00", clockOut)
}

func TestParseFile_Structural(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		want     error
	}{
		{"blank csv", "empty.csv", []byte("\n , ,\n\n"), importer.ErrNoHeaderRow},
		{"unsupported extension", "attendance.pdf", []byte("%PDF-1.4"), importer.ErrUnsupportedFile},
		{"corrupt workbook", "broken.xlsx", []byte("not a zip archive"), importer.ErrUnreadableFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := ParseFile(tt.fileName, tt.data)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, importer.ErrStructural)
			assert.Empty(t, file.Headers)
			assert.Empty(t, file.Rows)
		})
	}
}

func TestParseFile_HeaderOnly(t *testing.T) {
	file, err := ParseFile("header.csv", []byte("id,date,in,out\n"))
	require.NoError(t, err)
	assert.Len(t, file.Headers, 4)
	assert.Empty(t, file.Rows)
}
