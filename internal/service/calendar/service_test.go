package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	employees []employee.Employee
}

func (f *fakeEmployees) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployees) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

type fakeAttendance struct {
	records []attendance.Attendance
	err     error
}

func (f *fakeAttendance) ListByDateRange(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []attendance.Attendance
	for _, r := range f.records {
		if dateutil.Within(r.Date, filter.StartDate, filter.EndDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendance) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

type fakeLeaves struct {
	requests []leave.LeaveRequest
}

func (f *fakeLeaves) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaves) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeLeaves) UpdateStatus(ctx context.Context, request leave.LeaveRequest) error {
	return nil
}

type fakeHolidays struct {
	holidays []holiday.PublicHoliday
}

func (f *fakeHolidays) ListInRange(ctx context.Context, from, to time.Time) ([]holiday.PublicHoliday, error) {
	return f.holidays, nil
}

func newTestService(att *fakeAttendance) calendar.CalendarService {
	if att == nil {
		att = &fakeAttendance{records: []attendance.Attendance{
			record("e1", "2026-02-04", 480, attendance.StatusPresent),
			record("e1", "2026-02-05", 240, attendance.StatusPresent),
			record("e1", "2026-02-06", 470, attendance.StatusLate),
			record("e2", "2026-02-03", 480, attendance.StatusPresent),
		}}
	}
	lr2 := approvedLeave("lr2", "e2", "Sick Leave", "2026-02-05", "2026-02-06")
	lr2.EmployeeName = &[]string{"Employee e2"}[0]
	pending := approvedLeave("lr3", "e1", "Sick Leave", "2026-02-09", "2026-02-09")
	pending.Status = leave.LeaveRequestStatusPending

	return NewCalendarService(
		&fakeEmployees{employees: []employee.Employee{weekdayEmployee("e1"), weekdayEmployee("e2")}},
		att,
		&fakeLeaves{requests: []leave.LeaveRequest{
			approvedLeave("lr1", "e1", "Annual Leave", "2026-02-03", "2026-02-03"),
			lr2,
			pending,
		}},
		&fakeHolidays{holidays: []holiday.PublicHoliday{
			{ID: "h1", Date: date("2020-02-02"), Name: "Founders Day", IsActive: true, RecurrenceRule: rule("FREQ=YEARLY")},
		}},
		Options{
			Location: time.UTC,
			Now:      func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC) },
		},
	)
}

func TestCalendarService_GetEmployeeCalendar(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.GetEmployeeCalendar(context.Background(), calendar.EmployeeCalendarQuery{
		EmployeeID: "e1",
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-10",
	})
	require.NoError(t, err)

	assert.Equal(t, "EMP-e1", resp.EmployeeCode)
	assert.Equal(t, "2026-02-10", resp.Today)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, resp.WorkingDays)
	require.Len(t, resp.Days, 9)

	statuses := make([]string, 0, len(resp.Days))
	for _, d := range resp.Days {
		statuses = append(statuses, d.Status)
	}
	assert.Equal(t, []string{
		"holiday", "annual_leave", "full", "half", "late", "off_day", "off_day", "absent", "empty",
	}, statuses)

	assert.Equal(t, "Founders Day", resp.Days[0].HolidayName)
	assert.Equal(t, 8.0, resp.Days[2].WorkHours)
	assert.Equal(t, 2.5, resp.Summary.WorkingDaysCount)
	assert.Equal(t, 4.5, resp.Summary.TotalPaidDays)
	assert.Equal(t, 75, resp.Summary.AttendanceRate)
	assert.Nil(t, resp.Summary.Days)
}

func TestCalendarService_GetEmployeeCalendar_Locale(t *testing.T) {
	svc := newTestService(nil)
	ctx := i18n.WithLocale(context.Background(), "id")

	resp, err := svc.GetEmployeeCalendar(ctx, calendar.EmployeeCalendarQuery{
		EmployeeID: "e1",
		StartDate:  "2026-02-02",
		EndDate:    "2026-02-02",
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "Libur", resp.Days[0].Label)
}

func TestCalendarService_GetEmployeeCalendar_Errors(t *testing.T) {
	t.Run("unknown employee", func(t *testing.T) {
		_, err := newTestService(nil).GetEmployeeCalendar(context.Background(), calendar.EmployeeCalendarQuery{
			EmployeeID: "missing",
			StartDate:  "2026-02-02",
			EndDate:    "2026-02-08",
		})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := newTestService(nil).GetEmployeeCalendar(context.Background(), calendar.EmployeeCalendarQuery{
			EmployeeID: "e1",
			StartDate:  "2026-02-08",
			EndDate:    "2026-02-02",
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("range too long", func(t *testing.T) {
		_, err := newTestService(nil).GetEmployeeCalendar(context.Background(), calendar.EmployeeCalendarQuery{
			EmployeeID: "e1",
			StartDate:  "2025-01-01",
			EndDate:    "2026-02-02",
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})

	t.Run("repository failure", func(t *testing.T) {
		boom := errors.New("connection reset")
		_, err := newTestService(&fakeAttendance{err: boom}).GetEmployeeCalendar(context.Background(), calendar.EmployeeCalendarQuery{
			EmployeeID: "e1",
			StartDate:  "2026-02-02",
			EndDate:    "2026-02-08",
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestCalendarService_GetFleetSummary(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.GetFleetSummary(context.Background(), calendar.FleetSummaryQuery{
		StartDate: "2026-02-02",
		EndDate:   "2026-02-08",
	})
	require.NoError(t, err)
	require.Len(t, resp.Employees, 2)

	assert.Equal(t, 3, resp.Present)
	assert.Equal(t, 1, resp.Late)
	assert.Equal(t, 1, resp.Absent)
	assert.Equal(t, 80, resp.AttendanceRate)
	assert.Equal(t, "Employee e1", resp.Employees[0].EmployeeName)
	assert.Nil(t, resp.Employees[0].Days)

	t.Run("filtered with days", func(t *testing.T) {
		resp, err := svc.GetFleetSummary(context.Background(), calendar.FleetSummaryQuery{
			StartDate:   "2026-02-02",
			EndDate:     "2026-02-08",
			EmployeeIDs: []string{"e2"},
			IncludeDays: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Employees, 1)
		assert.Equal(t, "e2", resp.Employees[0].EmployeeID)
		assert.Len(t, resp.Employees[0].Days, 7)
		assert.Equal(t, 50, resp.AttendanceRate)
	})

	t.Run("no matching employees", func(t *testing.T) {
		resp, err := svc.GetFleetSummary(context.Background(), calendar.FleetSummaryQuery{
			StartDate:   "2026-02-02",
			EndDate:     "2026-02-08",
			EmployeeIDs: []string{"nobody"},
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Employees)
		assert.Zero(t, resp.AttendanceRate)
	})
}

func TestCalendarService_GetLeaveLanes(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.GetLeaveLanes(context.Background(), calendar.LeaveLaneQuery{
		StartDate: "2026-02-01",
		EndDate:   "2026-02-28",
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 1, resp.LaneCount)
	assert.Equal(t, "lr1", resp.Items[0].LeaveRequestID)
	assert.Equal(t, "lr2", resp.Items[1].LeaveRequestID)
	assert.Equal(t, "Employee e2", resp.Items[1].EmployeeName)
	assert.Equal(t, "approved", resp.Items[1].Status)

	t.Run("pending only", func(t *testing.T) {
		resp, err := svc.GetLeaveLanes(context.Background(), calendar.LeaveLaneQuery{
			StartDate: "2026-02-01",
			EndDate:   "2026-02-28",
			Status:    "pending",
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "lr3", resp.Items[0].LeaveRequestID)
	})

	t.Run("rejected is not a lane status", func(t *testing.T) {
		_, err := svc.GetLeaveLanes(context.Background(), calendar.LeaveLaneQuery{
			StartDate: "2026-02-01",
			EndDate:   "2026-02-28",
			Status:    "rejected",
		})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs)
	})
}
