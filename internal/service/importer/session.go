package importer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
)

// RecordWriter persists one attendance record.
type RecordWriter interface {
	Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error)
}

// Session walks one upload through the import steps. A session is driven
// by a single operator; callers serialize access through the Registry.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	lastActive atomic.Int64

	step    importer.Step
	file    importer.ParsedFile
	mapping importer.ColumnMapping
	records []importer.ParsedRecord
	result  *importer.CommitResult
}

func NewSession(id string, now time.Time) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: now,
		step:      importer.StepUpload,
		mapping:   importer.ColumnMapping{},
	}
	s.touch(now)
	return s
}

func (s *Session) Step() importer.Step { return s.step }
func (s *Session) File() importer.ParsedFile { return s.file }
func (s *Session) Mapping() importer.ColumnMapping { return s.mapping.Clone() }
func (s *Session) Records() []importer.ParsedRecord { return s.records }
func (s *Session) Result() *importer.CommitResult { return s.result }
func (s *Session) LastActive() time.Time { return time.Unix(0, s.lastActive.Load()) }
func (s *Session) touch(now time.Time) { s.lastActive.Store(now.UnixNano()) }

// Upload stores a parsed file and proposes a column mapping.
func (s *Session) Upload(file importer.ParsedFile) error {
	if s.step != importer.StepUpload {
		return importer.ErrInvalidTransition
	}
	s.file = file
	s.mapping = AutoMap(file.Headers)
	s.records = nil
	s.result = nil
	s.step = importer.StepMapping
	return nil
}

// SetMapping applies operator overrides. Nothing changes if any binding is rejected.
func (s *Session) SetMapping(bindings map[importer.Field]int) error {
	if s.step != importer.StepMapping {
		return importer.ErrInvalidTransition
	}
	next, err := applyBindings(s.mapping, bindings, len(s.file.Headers))
	if err != nil {
		return err
	}
	s.mapping = next
	return nil
}

// Preview validates every row. It can be re-run from the preview step to
// pick up changes in stored data.
func (s *Session) Preview(ictx ImportContext) error {
	if s.step != importer.StepMapping && s.step != importer.StepPreview {
		return importer.ErrInvalidTransition
	}
	if !s.mapping.IsComplete() {
		return importer.ErrMappingIncomplete
	}
	s.records = Validate(s.mapping, s.file.Rows, ictx)
	s.step = importer.StepPreview
	return nil
}

// Back moves one step backwards: preview to mapping, mapping to upload.
func (s *Session) Back() error {
	switch s.step {
	case importer.StepPreview:
		s.records = nil
		s.step = importer.StepMapping
	case importer.StepMapping:
		s.file = importer.ParsedFile{}
		s.mapping = importer.ColumnMapping{}
		s.step = importer.StepUpload
	default:
		return importer.ErrInvalidTransition
	}
	return nil
}

// InvalidCount returns how many previewed rows have issues.
func (s *Session) InvalidCount() int {
	n := 0
	for _, rec := range s.records {
		if !rec.IsValid() {
			n++
		}
	}
	return n
}

// Commit writes every valid row. It refuses while rows have issues unless
// skipInvalid is set. Rows are written independently; a failed write is
// reported and the remaining rows are still attempted.
func (s *Session) Commit(ctx context.Context, w RecordWriter, rules Rules, skipInvalid bool) (importer.CommitResult, error) {
	if s.step != importer.StepPreview {
		return importer.CommitResult{}, importer.ErrInvalidTransition
	}
	if s.InvalidCount() > 0 && !skipInvalid {
		return importer.CommitResult{}, importer.ErrUnresolvedRows
	}

	s.step = importer.StepImporting
	result := importer.CommitResult{}

	for _, rec := range s.records {
		if !rec.IsValid() {
			result.FailedCount++
			result.Failures = append(result.Failures, importer.RowFailure{
				Row:     rec.Row,
				Message: joinIssues(rec.Issues),
			})
			continue
		}

		if err := ctx.Err(); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, importer.RowFailure{Row: rec.Row, Message: err.Error()})
			continue
		}

		if _, err := w.Create(ctx, DeriveRecord(rec, rules)); err != nil {
			result.FailedCount++
			result.Failures = append(result.Failures, importer.RowFailure{Row: rec.Row, Message: writeFailure(err)})
			continue
		}
		result.SuccessCount++
	}

	s.result = &result
	s.step = importer.StepResult
	return result, nil
}

func joinIssues(issues []importer.ValidationIssue) string {
	msgs := make([]string, 0, len(issues))
	for _, issue := range issues {
		msgs = append(msgs, issue.Message)
	}
	return strings.Join(msgs, "; ")
}

func writeFailure(err error) string {
	if errors.Is(err, attendance.ErrAttendanceExists) {
		return attendance.ErrAttendanceExists.Error()
	}
	return err.Error()
}
