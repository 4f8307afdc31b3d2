package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	Rules          Rules
	SessionTTL     time.Duration
	MaxUploadBytes int64
	PreviewRows    int
	Now            func() time.Time
}

func OptionsFromConfig(cfg config.ImportConfig, loc *time.Location) (Options, error) {
	rules, err := RulesFromConfig(cfg, loc)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Rules:          rules,
		SessionTTL:     cfg.SessionTTL,
		MaxUploadBytes: int64(cfg.MaxUploadMB) << 20,
		PreviewRows:    cfg.PreviewRows,
	}, nil
}

type ImportServiceImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository

	sessions *Registry
	opts     Options
}

func NewImportService(
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	opts Options,
) importer.ImportService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rules.StandardMinutes == 0 {
		opts.Rules = DefaultRules()
	}
	return &ImportServiceImpl{
		EmployeeRepository:     employeeRepository,
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		sessions:               NewRegistry(opts.SessionTTL, opts.Now),
		opts:                   opts,
	}
}

// Upload implements importer.ImportService.
func (s *ImportServiceImpl) Upload(ctx context.Context, req importer.UploadRequest) (importer.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return importer.SessionResponse{}, err
	}
	if s.opts.MaxUploadBytes > 0 && int64(len(req.Data)) > s.opts.MaxUploadBytes {
		return importer.SessionResponse{}, importer.ErrFileTooLarge
	}

	// Parse before touching any session so a bad file leaves nothing behind.
	file, err := ParseFile(req.FileName, req.Data)
	if err != nil {
		slog.Warn("import file rejected", "file", req.FileName, "error", err)
		return importer.SessionResponse{}, err
	}

	id := req.SessionID
	if id == "" {
		id = s.sessions.Create().ID
	}

	var resp importer.SessionResponse
	err = s.sessions.With(id, func(sess *Session) error {
		if err := sess.Upload(file); err != nil {
			return err
		}
		resp = s.toResponse(sess)
		return nil
	})
	if err != nil {
		return importer.SessionResponse{}, err
	}

	observeStep(importer.StepMapping)
	slog.Info("import file uploaded", "session_id", id, "file", req.FileName, "rows", len(file.Rows))
	return resp, nil
}

// GetSession implements importer.ImportService.
func (s *ImportServiceImpl) GetSession(ctx context.Context, id string) (importer.SessionResponse, error) {
	var resp importer.SessionResponse
	err := s.sessions.With(id, func(sess *Session) error {
		resp = s.toResponse(sess)
		return nil
	})
	return resp, err
}

// UpdateMapping implements importer.ImportService.
func (s *ImportServiceImpl) UpdateMapping(ctx context.Context, id string, req importer.UpdateMappingRequest) (importer.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return importer.SessionResponse{}, err
	}

	bindings := make(map[importer.Field]int, len(req.Bindings))
	for name, col := range req.Bindings {
		bindings[importer.Field(name)] = col
	}

	var resp importer.SessionResponse
	err := s.sessions.With(id, func(sess *Session) error {
		if err := sess.SetMapping(bindings); err != nil {
			return err
		}
		resp = s.toResponse(sess)
		return nil
	})
	return resp, err
}

// Preview implements importer.ImportService.
func (s *ImportServiceImpl) Preview(ctx context.Context, id string) (importer.SessionResponse, error) {
	var resp importer.SessionResponse
	err := s.sessions.With(id, func(sess *Session) error {
		if sess.Step() != importer.StepMapping && sess.Step() != importer.StepPreview {
			return importer.ErrInvalidTransition
		}
		if !sess.Mapping().IsComplete() {
			return importer.ErrMappingIncomplete
		}

		ictx, err := s.buildContext(ctx, sess)
		if err != nil {
			return err
		}
		if err := sess.Preview(ictx); err != nil {
			return err
		}

		observePreview(sess.Records())
		resp = s.toResponse(sess)
		return nil
	})
	if err != nil {
		return importer.SessionResponse{}, err
	}

	observeStep(importer.StepPreview)
	return resp, nil
}

// Back implements importer.ImportService.
func (s *ImportServiceImpl) Back(ctx context.Context, id string) (importer.SessionResponse, error) {
	var resp importer.SessionResponse
	err := s.sessions.With(id, func(sess *Session) error {
		if err := sess.Back(); err != nil {
			return err
		}
		resp = s.toResponse(sess)
		return nil
	})
	return resp, err
}

// Commit implements importer.ImportService.
func (s *ImportServiceImpl) Commit(ctx context.Context, id string, req importer.CommitRequest) (importer.SessionResponse, error) {
	var resp importer.SessionResponse
	err := s.sessions.With(id, func(sess *Session) error {
		start := time.Now()
		result, err := sess.Commit(ctx, s.AttendanceRepository, s.opts.Rules, req.SkipInvalid)
		if err != nil {
			return err
		}
		commitDuration.Observe(time.Since(start).Seconds())
		observeCommit(result)

		slog.Info("import committed",
			"session_id", id,
			"success", result.SuccessCount,
			"failed", result.FailedCount,
		)
		resp = s.toResponse(sess)
		return nil
	})
	if err != nil {
		return importer.SessionResponse{}, err
	}

	observeStep(importer.StepResult)
	return resp, nil
}

// Discard implements importer.ImportService.
func (s *ImportServiceImpl) Discard(ctx context.Context, id string) error {
	return s.sessions.Delete(id)
}

// ExpireSessions implements importer.ImportService.
func (s *ImportServiceImpl) ExpireSessions(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.sessions.ExpireIdle(), nil
}

// buildContext loads employees, approved leave and existing attendance for
// the dates present in the file, then answers validation lookups from them.
func (s *ImportServiceImpl) buildContext(ctx context.Context, sess *Session) (ImportContext, error) {
	mapping := sess.Mapping()
	from, to, ok := dateSpan(sess.File().Rows, mapping)

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return ImportContext{}, fmt.Errorf("failed to list employees: %w", err)
	}
	byCode := make(map[string]string, len(employees))
	for _, emp := range employees {
		byCode[strings.ToLower(emp.EmployeeCode)] = emp.ID
	}

	ictx := ImportContext{
		ResolveEmployee: func(ref string) (string, bool) {
			id, ok := byCode[strings.ToLower(strings.TrimSpace(ref))]
			return id, ok
		},
		Locale: i18n.LocaleFromContext(ctx),
	}
	if !ok {
		return ictx, nil
	}

	var (
		leaves  []leave.LeaveRequest
		records []attendance.Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		status := string(leave.LeaveRequestStatusApproved)
		startDate, endDate := dateutil.Key(from), dateutil.Key(to)
		var err error
		leaves, err = s.LeaveRequestRepository.List(gctx, leave.LeaveRequestFilter{
			Status:    &status,
			StartDate: &startDate,
			EndDate:   &endDate,
		})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByDateRange(gctx, attendance.AttendanceFilter{
			StartDate: from,
			EndDate:   to,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ImportContext{}, err
	}

	// The same snapshot the calendar classifies from, so a row conflicts
	// with leave exactly when that day would show as leave.
	snap := calendar.NewSnapshot(s.opts.Now(), nil, leaves, records)
	ictx.HasAttendance = func(employeeID string, date time.Time) bool {
		_, ok := snap.RecordOn(employeeID, date)
		return ok
	}
	ictx.ApprovedLeaveCovers = func(employeeID string, date time.Time) bool {
		_, ok := snap.LeaveOn(employeeID, date)
		return ok
	}
	return ictx, nil
}

func dateSpan(rows []importer.Row, mapping importer.ColumnMapping) (time.Time, time.Time, bool) {
	var from, to time.Time
	for _, row := range rows {
		d, ok := NormalizeDate(cell(row, mapping, importer.FieldDate))
		if !ok {
			continue
		}
		if from.IsZero() || d.Before(from) {
			from = d
		}
		if d.After(to) {
			to = d
		}
	}
	return from, to, !from.IsZero()
}

func (s *ImportServiceImpl) toResponse(sess *Session) importer.SessionResponse {
	file := sess.File()
	mapping := sess.Mapping()

	resp := importer.SessionResponse{
		ID:            sess.ID,
		Step:          sess.Step(),
		FileName:      file.FileName,
		Headers:       file.Headers,
		TotalRows:     len(file.Rows),
		MissingFields: mapping.Missing(),
		Result:        sess.Result(),
		UpdatedAt:     sess.LastActive(),
		ExpiresAt:     s.sessions.ExpiresAt(sess),
	}

	for i := 0; i < len(file.Rows) && i < s.opts.PreviewRows; i++ {
		resp.SampleRows = append(resp.SampleRows, file.Rows[i].Cells)
	}
	for _, field := range importer.Fields {
		col, ok := mapping.Column(field)
		if !ok {
			continue
		}
		resp.Mapping = append(resp.Mapping, importer.FieldBinding{
			Field:  field,
			Column: col,
			Header: file.Headers[col],
		})
	}
	if records := sess.Records(); records != nil {
		resp.Preview = previewSummary(records)
	}
	return resp
}

func previewSummary(records []importer.ParsedRecord) *importer.PreviewSummary {
	summary := &importer.PreviewSummary{
		TotalRows:   len(records),
		IssueCounts: map[importer.IssueKind]int{},
		Rows:        make([]importer.PreviewRow, 0, len(records)),
	}

	for _, rec := range records {
		row := importer.PreviewRow{
			Row:         rec.Row,
			EmployeeRef: rec.EmployeeRef,
			EmployeeID:  rec.EmployeeID,
			RawDate:     rec.RawDate,
			ClockIn:     rec.ClockIn,
			ClockOut:    rec.ClockOut,
			Valid:       rec.IsValid(),
			Issues:      rec.Issues,
		}
		if !rec.Date.IsZero() {
			row.Date = dateutil.Key(rec.Date)
		}

		if row.Valid {
			summary.ValidRows++
		} else {
			summary.InvalidRows++
			for _, issue := range rec.Issues {
				summary.IssueCounts[issue.Kind]++
			}
		}
		summary.Rows = append(summary.Rows, row)
	}
	return summary
}
