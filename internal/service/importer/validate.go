package importer

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
)

// ImportContext is the read-only view of stored data that validation
// checks rows against. Nil funcs are treated as "never matches".
type ImportContext struct {
	// ResolveEmployee maps the employee reference written in the file to
	// an internal employee ID.
	ResolveEmployee     func(ref string) (string, bool)
	HasAttendance       func(employeeID string, date time.Time) bool
	ApprovedLeaveCovers func(employeeID string, date time.Time) bool
	// Locale selects the language of issue messages.
	Locale string
}

type duplicateKey struct {
	employeeID string
	date       string
}

// Validate checks every row in two passes. The first counts rows per
// resolved (employee, date) so that the second can flag in-file duplicates
// on every copy, including copies written in different date formats.
// Problems are collected on each record and never returned as errors.
func Validate(mapping importer.ColumnMapping, rows []importer.Row, ictx ImportContext) []importer.ParsedRecord {
	records := make([]importer.ParsedRecord, len(rows))
	seen := make(map[duplicateKey]int, len(rows))

	for i, row := range rows {
		rec := importer.ParsedRecord{
			Row:         row.Number,
			EmployeeRef: cell(row, mapping, importer.FieldEmployeeID),
			RawDate:     cell(row, mapping, importer.FieldDate),
		}
		if !IsPlaceholder(rec.EmployeeRef) && ictx.ResolveEmployee != nil {
			rec.EmployeeID, _ = ictx.ResolveEmployee(rec.EmployeeRef)
		}
		if d, ok := NormalizeDate(rec.RawDate); ok {
			rec.Date = d
		}
		if rec.EmployeeID != "" && !rec.Date.IsZero() {
			seen[duplicateKey{rec.EmployeeID, dateutil.Key(rec.Date)}]++
		}
		records[i] = rec
	}

	for i, row := range rows {
		records[i] = validateRow(records[i], row, mapping, ictx, seen)
	}
	return records
}

func validateRow(rec importer.ParsedRecord, row importer.Row, mapping importer.ColumnMapping, ictx ImportContext, seen map[duplicateKey]int) importer.ParsedRecord {
	issues := newIssueList(ictx.Locale)

	if IsPlaceholder(rec.EmployeeRef) {
		issues.add(importer.IssueMissingField, importer.FieldEmployeeID, "", nil)
	} else if rec.EmployeeID == "" {
		issues.add(importer.IssueUnknownEmployee, importer.FieldEmployeeID, rec.EmployeeRef, nil)
	}

	if IsPlaceholder(rec.RawDate) {
		issues.add(importer.IssueMissingField, importer.FieldDate, "", nil)
	} else if rec.Date.IsZero() {
		issues.add(importer.IssueInvalidDateFormat, importer.FieldDate, rec.RawDate, nil)
	}

	if rec.EmployeeID != "" && !rec.Date.IsZero() {
		date := rec.Date
		if seen[duplicateKey{rec.EmployeeID, dateutil.Key(date)}] > 1 {
			issues.add(importer.IssueDuplicateInFile, importer.FieldDate, rec.EmployeeRef, &date)
		}
		if ictx.HasAttendance != nil && ictx.HasAttendance(rec.EmployeeID, date) {
			issues.add(importer.IssueDuplicateInSystem, importer.FieldDate, rec.EmployeeRef, &date)
		}
		if ictx.ApprovedLeaveCovers != nil && ictx.ApprovedLeaveCovers(rec.EmployeeID, date) {
			issues.add(importer.IssueLeaveConflict, importer.FieldDate, rec.EmployeeRef, &date)
		}
	}

	var inOK, outOK bool
	rec.ClockIn, inOK = NormalizeTimeOn(cell(row, mapping, importer.FieldClockIn), rec.Date)
	if !inOK {
		issues.add(importer.IssueInvalidTimeFormat, importer.FieldClockIn, rec.ClockIn, nil)
	}
	rec.ClockOut, outOK = NormalizeTimeOn(cell(row, mapping, importer.FieldClockOut), rec.Date)
	if !outOK {
		issues.add(importer.IssueInvalidTimeFormat, importer.FieldClockOut, rec.ClockOut, nil)
	}

	if inOK && outOK && rec.ClockIn != "" && rec.ClockOut != "" {
		in, _ := clockMinutes(rec.ClockIn)
		out, _ := clockMinutes(rec.ClockOut)
		if out <= in {
			issues.add(importer.IssueClockOutBeforeClockIn, importer.FieldClockOut, rec.ClockOut, nil)
		}
	}

	rec.Issues = issues.items
	return rec
}

func cell(row importer.Row, mapping importer.ColumnMapping, field importer.Field) string {
	col, ok := mapping.Column(field)
	if !ok {
		return ""
	}
	return strings.TrimSpace(row.Cell(col))
}

type issueList struct {
	locale string
	items  []importer.ValidationIssue
}

func newIssueList(locale string) *issueList {
	if locale == "" {
		locale = i18n.DefaultLocale()
	}
	return &issueList{locale: locale}
}

func (l *issueList) add(kind importer.IssueKind, field importer.Field, value string, date *time.Time) {
	data := map[string]any{
		"Field": i18n.TL(l.locale, "import.field."+string(field)),
		"Value": value,
	}
	if date != nil {
		data["Date"] = dateutil.Key(*date)
	}

	l.items = append(l.items, importer.ValidationIssue{
		Kind:    kind,
		Field:   field,
		Message: i18n.TL(l.locale, "import.issue."+string(kind), data),
	})
}
