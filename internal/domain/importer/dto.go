package importer

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type UploadRequest struct {
	// SessionID re-uploads into a session that was sent back to the upload step.
	SessionID string
	FileName  string
	Data      []byte
}

func (r *UploadRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FileName) {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file name is required",
		})
	}
	if len(r.Data) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "file",
			Message: "file must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateMappingRequest overrides bindings by field name. A negative column unbinds the field.
type UpdateMappingRequest struct {
	Bindings map[string]int `json:"bindings" validate:"required,min=1"`
}

func (r *UpdateMappingRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	for name := range r.Bindings {
		if !Field(name).IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "bindings." + name,
				Message: "unknown field " + name,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CommitRequest struct {
	SkipInvalid bool `json:"skip_invalid"`
}

type FieldBinding struct {
	Field  Field  `json:"field"`
	Column int    `json:"column"`
	Header string `json:"header"`
}

type PreviewRow struct {
	Row         int               `json:"row"`
	EmployeeRef string            `json:"employee_ref"`
	EmployeeID  string            `json:"employee_id,omitempty"`
	Date        string            `json:"date,omitempty"`
	RawDate     string            `json:"raw_date,omitempty"`
	ClockIn     string            `json:"clock_in,omitempty"`
	ClockOut    string            `json:"clock_out,omitempty"`
	Valid       bool              `json:"valid"`
	Issues      []ValidationIssue `json:"issues,omitempty"`
}

type PreviewSummary struct {
	TotalRows   int               `json:"total_rows"`
	ValidRows   int               `json:"valid_rows"`
	InvalidRows int               `json:"invalid_rows"`
	IssueCounts map[IssueKind]int `json:"issue_counts,omitempty"`
	Rows        []PreviewRow      `json:"rows"`
}

type SessionResponse struct {
	ID            string          `json:"id"`
	Step          Step            `json:"step"`
	FileName      string          `json:"file_name,omitempty"`
	Headers       []string        `json:"headers,omitempty"`
	SampleRows    [][]string      `json:"sample_rows,omitempty"`
	TotalRows     int             `json:"total_rows"`
	Mapping       []FieldBinding  `json:"mapping,omitempty"`
	MissingFields []Field         `json:"missing_fields,omitempty"`
	Preview       *PreviewSummary `json:"preview,omitempty"`
	Result        *CommitResult   `json:"result,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
}
