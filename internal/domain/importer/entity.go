package importer

import (
	"time"
)

// Step is a stage of the import wizard.
type Step string

const (
	StepUpload    Step = "upload"
	StepMapping   Step = "mapping"
	StepPreview   Step = "preview"
	StepImporting Step = "importing"
	StepResult    Step = "result"
)

// Field is a canonical attendance column an uploaded column can map to.
type Field string

const (
	FieldEmployeeID Field = "employee_id"
	FieldDate       Field = "date"
	FieldClockIn    Field = "clock_in"
	FieldClockOut   Field = "clock_out"
)

// Fields lists the canonical fields in auto-mapping order.
var Fields = []Field{FieldEmployeeID, FieldDate, FieldClockIn, FieldClockOut}

func (f Field) IsValid() bool {
	for _, field := range Fields {
		if f == field {
			return true
		}
	}
	return false
}

// ParsedFile is an uploaded spreadsheet reduced to a header and data rows.
type ParsedFile struct {
	FileName string
	Headers  []string
	Rows     []Row
}

// Row is one data row. Number is the 1-based row in the source file, where
// the header is row 1.
type Row struct {
	Number int
	Cells  []string
}

// Cell returns the trimmed value at column or "" when out of range.
func (r Row) Cell(column int) string {
	if column < 0 || column >= len(r.Cells) {
		return ""
	}
	return r.Cells[column]
}

// IssueKind classifies a row-level validation failure.
type IssueKind string

const (
	IssueMissingField          IssueKind = "missing_field"
	IssueUnknownEmployee       IssueKind = "unknown_employee"
	IssueInvalidDateFormat     IssueKind = "invalid_date_format"
	IssueDuplicateInFile       IssueKind = "duplicate_in_file"
	IssueDuplicateInSystem     IssueKind = "duplicate_in_system"
	IssueLeaveConflict         IssueKind = "leave_conflict"
	IssueInvalidTimeFormat     IssueKind = "invalid_time_format"
	IssueClockOutBeforeClockIn IssueKind = "clock_out_before_clock_in"
)

// ValidationIssue is collected per row; it is data, never a returned error.
type ValidationIssue struct {
	Kind    IssueKind `json:"kind"`
	Field   Field     `json:"field,omitempty"`
	Message string    `json:"message"`
}

// ParsedRecord is a data row after mapping, normalization and validation.
type ParsedRecord struct {
	Row         int
	EmployeeRef string
	EmployeeID  string
	RawDate     string
	Date        time.Time
	ClockIn     string
	ClockOut    string
	Issues      []ValidationIssue
}

func (r ParsedRecord) IsValid() bool {
	return len(r.Issues) == 0
}

func (r ParsedRecord) HasIssue(kind IssueKind) bool {
	for _, issue := range r.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

// RowFailure explains why a row was not written during commit.
type RowFailure struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type CommitResult struct {
	SuccessCount int          `json:"success_count"`
	FailedCount  int          `json:"failed_count"`
	Failures     []RowFailure `json:"failures,omitempty"`
}
