package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"golang.org/x/sync/errgroup"
)

// Options configures how the service decides "today" and what a full day is.
type Options struct {
	Location            *time.Location
	StandardWorkMinutes int
	Now                 func() time.Time
}

type CalendarServiceImpl struct {
	employee.EmployeeRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
	holiday.HolidayRepository

	location            *time.Location
	standardWorkMinutes int
	now                 func() time.Time
}

func NewCalendarService(
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	holidayRepository holiday.HolidayRepository,
	opts Options,
) calendar.CalendarService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CalendarServiceImpl{
		EmployeeRepository:     employeeRepository,
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
		HolidayRepository:      holidayRepository,
		location:               opts.Location,
		standardWorkMinutes:    opts.StandardWorkMinutes,
		now:                    opts.Now,
	}
}

// GetEmployeeCalendar implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetEmployeeCalendar(ctx context.Context, query calendar.EmployeeCalendarQuery) (calendar.EmployeeCalendarResponse, error) {
	if err := query.Validate(); err != nil {
		return calendar.EmployeeCalendarResponse{}, err
	}
	from, to := calendar.ParseRange(query.StartDate, query.EndDate)

	emp, err := s.EmployeeRepository.GetByID(ctx, query.EmployeeID)
	if err != nil {
		return calendar.EmployeeCalendarResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	snap, err := s.loadSnapshot(ctx, []string{emp.ID}, from, to)
	if err != nil {
		return calendar.EmployeeCalendarResponse{}, err
	}

	summary := AggregateRange(emp, dateutil.Range(from, to), snap)
	observeDays(summary.Days)

	locale := i18n.LocaleFromContext(ctx)
	days := mapDays(locale, summary.Days)
	summaryResp := mapSummary(summary, emp.FullName, nil)

	return calendar.EmployeeCalendarResponse{
		EmployeeID:   emp.ID,
		EmployeeCode: emp.EmployeeCode,
		EmployeeName: emp.FullName,
		WorkingDays:  emp.WorkingDays.Indices(),
		StartDate:    dateutil.Key(from),
		EndDate:      dateutil.Key(to),
		Today:        dateutil.Key(snap.Today),
		Days:         days,
		Summary:      summaryResp,
	}, nil
}

// GetFleetSummary implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetFleetSummary(ctx context.Context, query calendar.FleetSummaryQuery) (calendar.FleetSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return calendar.FleetSummaryResponse{}, err
	}
	from, to := calendar.ParseRange(query.StartDate, query.EndDate)

	emps, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return calendar.FleetSummaryResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	emps = filterEmployees(emps, query.EmployeeIDs)

	ids := make([]string, 0, len(emps))
	names := make(map[string]string, len(emps))
	for _, emp := range emps {
		ids = append(ids, emp.ID)
		names[emp.ID] = emp.FullName
	}

	resp := calendar.FleetSummaryResponse{
		StartDate: dateutil.Key(from),
		EndDate:   dateutil.Key(to),
		Employees: []calendar.SummaryResponse{},
	}
	if len(emps) == 0 {
		return resp, nil
	}

	snap, err := s.loadSnapshot(ctx, ids, from, to)
	if err != nil {
		return calendar.FleetSummaryResponse{}, err
	}

	fleet := AggregateFleet(emps, dateutil.Range(from, to), snap)
	locale := i18n.LocaleFromContext(ctx)
	for _, summary := range fleet.Employees {
		observeDays(summary.Days)

		var days []calendar.DayStatusResponse
		if query.IncludeDays {
			days = mapDays(locale, summary.Days)
		}
		resp.Employees = append(resp.Employees, mapSummary(summary, names[summary.EmployeeID], days))
	}
	resp.Present = fleet.Present
	resp.Late = fleet.Late
	resp.Absent = fleet.Absent
	resp.AttendanceRate = fleet.AttendanceRate

	return resp, nil
}

// GetLeaveLanes implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetLeaveLanes(ctx context.Context, query calendar.LeaveLaneQuery) (calendar.LeaveLaneResponse, error) {
	if err := query.Validate(); err != nil {
		return calendar.LeaveLaneResponse{}, err
	}

	status := query.Status
	if status == "" {
		status = string(leave.LeaveRequestStatusApproved)
	}
	requests, err := s.LeaveRequestRepository.List(ctx, leave.LeaveRequestFilter{
		EmployeeID: query.EmployeeID,
		Status:     &status,
		StartDate:  &query.StartDate,
		EndDate:    &query.EndDate,
	})
	if err != nil {
		return calendar.LeaveLaneResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	byID := make(map[string]leave.LeaveRequest, len(requests))
	intervals := make([]calendar.LaneInterval, 0, len(requests))
	for _, lr := range requests {
		byID[lr.ID] = lr
		intervals = append(intervals, calendar.LaneInterval{
			ID:    lr.ID,
			Start: lr.StartDate,
			End:   lr.EndDate,
		})
	}

	assignments := AssignLanes(intervals)
	resp := calendar.LeaveLaneResponse{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		LaneCount: LaneCount(assignments),
		Items:     make([]calendar.LeaveLaneItem, 0, len(assignments)),
	}
	for _, a := range assignments {
		lr := byID[a.ID]
		item := calendar.LeaveLaneItem{
			LeaveRequestID: lr.ID,
			EmployeeID:     lr.EmployeeID,
			LeaveTypeName:  lr.LeaveTypeName,
			Status:         string(lr.Status),
			StartDate:      dateutil.Key(a.Start),
			EndDate:        dateutil.Key(a.End),
			HalfDay:        lr.HalfDayPeriod(),
			Lane:           a.Lane,
		}
		if lr.EmployeeName != nil {
			item.EmployeeName = *lr.EmployeeName
		}
		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}

// loadSnapshot fetches holidays, approved leave and attendance for the range concurrently.
func (s *CalendarServiceImpl) loadSnapshot(ctx context.Context, employeeIDs []string, from, to time.Time) (snap *calendar.Snapshot, err error) {
	start := time.Now()
	defer func() { observeSnapshot(start, err) }()

	var (
		holidays []holiday.PublicHoliday
		leaves   []leave.LeaveRequest
		records  []attendance.Attendance
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.HolidayRepository.ListInRange(gctx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list holidays: %w", err)
		}
		holidays, err = ExpandHolidays(rows, from, to)
		return err
	})
	g.Go(func() error {
		status := string(leave.LeaveRequestStatusApproved)
		startDate, endDate := dateutil.Key(from), dateutil.Key(to)
		filter := leave.LeaveRequestFilter{
			Status:    &status,
			StartDate: &startDate,
			EndDate:   &endDate,
		}
		if len(employeeIDs) == 1 {
			filter.EmployeeID = &employeeIDs[0]
		}

		var err error
		leaves, err = s.LeaveRequestRepository.List(gctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		records, err = s.AttendanceRepository.ListByDateRange(gctx, attendance.AttendanceFilter{
			EmployeeIDs: employeeIDs,
			StartDate:   from,
			EndDate:     to,
		})
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap = calendar.NewSnapshot(s.today(), holidays, leaves, records)
	snap.StandardWorkMinutes = s.standardWorkMinutes
	return snap, nil
}

func (s *CalendarServiceImpl) today() time.Time {
	return dateutil.Today(s.now(), s.location)
}

func filterEmployees(emps []employee.Employee, ids []string) []employee.Employee {
	if len(ids) == 0 {
		return emps
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	filtered := make([]employee.Employee, 0, len(ids))
	for _, emp := range emps {
		if _, ok := wanted[emp.ID]; ok {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}

func mapDays(locale string, days []calendar.DayStatus) []calendar.DayStatusResponse {
	resp := make([]calendar.DayStatusResponse, 0, len(days))
	for _, d := range days {
		d = Describe(locale, d)
		item := calendar.DayStatusResponse{
			Date:           dateutil.Key(d.Date),
			Status:         string(d.Kind),
			Label:          d.Label,
			Tooltip:        d.Tooltip,
			Paid:           d.Paid,
			HalfDay:        string(d.HalfDay),
			HolidayName:    d.HolidayName,
			LeaveRequestID: d.LeaveRequestID,
			LeaveTypeName:  d.LeaveTypeName,
			LateMinutes:    d.LateMinutes,
		}
		if d.WorkMinutes > 0 {
			item.WorkHours = float64(d.WorkMinutes) / 60
		}
		resp = append(resp, item)
	}
	return resp
}

func mapSummary(summary calendar.Summary, employeeName string, days []calendar.DayStatusResponse) calendar.SummaryResponse {
	return calendar.SummaryResponse{
		EmployeeID:        summary.EmployeeID,
		EmployeeName:      employeeName,
		WorkingDaysCount:  summary.WorkingDaysCount,
		AnnualLeaveDays:   summary.AnnualLeaveDays,
		LeaveDays:         summary.LeaveDays,
		PublicHolidayDays: summary.PublicHolidayDays,
		PaidLeaveDays:     summary.PaidLeaveDays,
		TotalPaidDays:     summary.TotalPaidDays,
		Present:           summary.Present,
		Late:              summary.Late,
		Absent:            summary.Absent,
		EarlyLeave:        summary.EarlyLeave,
		NoHours:           summary.NoHours,
		OffDays:           summary.OffDays,
		AttendanceRate:    summary.AttendanceRate,
		Days:              days,
	}
}
