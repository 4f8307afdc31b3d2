package calendar

import (
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func weekdayEmployee(id string) employee.Employee {
	wd, _ := employee.NewWorkingDays(1, 2, 3, 4, 5)
	return employee.Employee{
		ID:               id,
		EmployeeCode:     "EMP-" + id,
		FullName:         "Employee " + id,
		EmploymentStatus: employee.EmploymentStatusActive,
		WorkingDays:      wd,
	}
}

func record(empID, day string, minutes int, status attendance.Status) attendance.Attendance {
	return attendance.Attendance{
		ID:                 empID + "-" + day,
		EmployeeID:         empID,
		Date:               date(day),
		WorkHoursInMinutes: minutes,
		Status:             status,
		Source:             attendance.SourceClock,
	}
}

func approvedLeave(id, empID, typeName, start, end string) leave.LeaveRequest {
	return leave.LeaveRequest{
		ID:            id,
		EmployeeID:    empID,
		LeaveTypeName: typeName,
		StartDate:     date(start),
		EndDate:       date(end),
		DurationType:  leave.LeaveDurationFullDay,
		Status:        leave.LeaveRequestStatusApproved,
	}
}

// Week of 2026-02-02 (Monday) with today set to Tuesday 2026-02-10.
func TestClassifyDay_Precedence(t *testing.T) {
	emp := weekdayEmployee("e1")
	snap := calendar.NewSnapshot(
		date("2026-02-10"),
		[]holiday.PublicHoliday{{ID: "h1", Date: date("2026-02-03"), Name: "Founders Day", IsActive: true}},
		[]leave.LeaveRequest{
			approvedLeave("lr1", "e1", "Annual Leave", "2026-02-03", "2026-02-04"),
		},
		[]attendance.Attendance{
			record("e1", "2026-02-03", 480, attendance.StatusPresent),
			record("e1", "2026-02-04", 480, attendance.StatusPresent),
		},
	)

	t.Run("holiday beats leave and record", func(t *testing.T) {
		status := ClassifyDay(emp, date("2026-02-03"), snap)
		assert.Equal(t, calendar.DayStatusHoliday, status.Kind)
		assert.Equal(t, "Founders Day", status.HolidayName)
		assert.True(t, status.Paid)
		assert.Equal(t, "Holiday", status.Label)
		assert.Equal(t, "Public holiday: Founders Day", status.Tooltip)
	})

	t.Run("leave beats record", func(t *testing.T) {
		status := ClassifyDay(emp, date("2026-02-04"), snap)
		assert.Equal(t, calendar.DayStatusAnnualLeave, status.Kind)
		assert.Equal(t, "lr1", status.LeaveRequestID)
		assert.True(t, status.Paid)
		assert.Zero(t, status.WorkMinutes)
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		status := ClassifyDay(emp, date("2026-02-03").Add(15*time.Hour), snap)
		assert.Equal(t, calendar.DayStatusHoliday, status.Kind)
	})
}

func TestClassifyDay_Records(t *testing.T) {
	emp := weekdayEmployee("e1")
	snap := calendar.NewSnapshot(date("2026-02-10"), nil, nil, []attendance.Attendance{
		record("e1", "2026-02-02", 480, attendance.StatusPresent),
		record("e1", "2026-02-03", 240, attendance.StatusPresent),
		record("e1", "2026-02-04", 0, attendance.StatusPresent),
		record("e1", "2026-02-05", 500, attendance.StatusLate),
		record("e1", "2026-02-06", 300, attendance.StatusEarlyLeave),
	})

	tests := []struct {
		day  string
		want calendar.DayStatusKind
		paid bool
	}{
		{"2026-02-02", calendar.DayStatusFull, true},
		{"2026-02-03", calendar.DayStatusHalf, true},
		{"2026-02-04", calendar.DayStatusNoHours, false},
		{"2026-02-05", calendar.DayStatusLate, true},
		{"2026-02-06", calendar.DayStatusEarlyLeave, false},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			status := ClassifyDay(emp, date(tt.day), snap)
			assert.Equal(t, tt.want, status.Kind)
			assert.Equal(t, tt.paid, status.Paid)
		})
	}

	t.Run("custom full day length", func(t *testing.T) {
		short := calendar.NewSnapshot(date("2026-02-10"), nil, nil, []attendance.Attendance{
			record("e1", "2026-02-03", 240, attendance.StatusPresent),
		})
		short.StandardWorkMinutes = 240
		assert.Equal(t, calendar.DayStatusFull, ClassifyDay(emp, date("2026-02-03"), short).Kind)
	})

	t.Run("half tooltip shows hours", func(t *testing.T) {
		status := ClassifyDay(emp, date("2026-02-03"), snap)
		assert.Equal(t, "4 hours worked", status.Tooltip)
	})
}

func TestClassifyDay_NoData(t *testing.T) {
	emp := weekdayEmployee("e1")
	snap := calendar.NewSnapshot(date("2026-02-10"), nil, nil, nil)

	assert.Equal(t, calendar.DayStatusAbsent, ClassifyDay(emp, date("2026-02-09"), snap).Kind)
	assert.Equal(t, calendar.DayStatusOffDay, ClassifyDay(emp, date("2026-02-07"), snap).Kind)
	assert.Equal(t, calendar.DayStatusOffDay, ClassifyDay(emp, date("2026-02-14"), snap).Kind)

	today := ClassifyDay(emp, date("2026-02-10"), snap)
	assert.Equal(t, calendar.DayStatusEmpty, today.Kind)
	assert.Empty(t, today.Label)
	assert.False(t, today.Paid)

	assert.Equal(t, calendar.DayStatusEmpty, ClassifyDay(emp, date("2026-02-11"), snap).Kind)

	t.Run("sunday to thursday schedule", func(t *testing.T) {
		wd, err := employee.NewWorkingDays(0, 1, 2, 3, 4)
		require.NoError(t, err)
		shifted := weekdayEmployee("e2")
		shifted.WorkingDays = wd

		assert.Equal(t, calendar.DayStatusAbsent, ClassifyDay(shifted, date("2026-02-08"), snap).Kind)
		assert.Equal(t, calendar.DayStatusOffDay, ClassifyDay(shifted, date("2026-02-06"), snap).Kind)
	})
}

func TestClassifyDay_IgnoresUnapprovedAndInactive(t *testing.T) {
	emp := weekdayEmployee("e1")
	pending := approvedLeave("lr1", "e1", "Sick Leave", "2026-02-02", "2026-02-02")
	pending.Status = leave.LeaveRequestStatusPending

	snap := calendar.NewSnapshot(
		date("2026-02-10"),
		[]holiday.PublicHoliday{{ID: "h1", Date: date("2026-02-02"), Name: "Cancelled", IsActive: false}},
		[]leave.LeaveRequest{pending},
		nil,
	)

	assert.Equal(t, calendar.DayStatusAbsent, ClassifyDay(emp, date("2026-02-02"), snap).Kind)
}

func TestClassifyDay_HalfDayLeave(t *testing.T) {
	emp := weekdayEmployee("e1")
	lr := approvedLeave("lr1", "e1", "Annual Leave", "2026-02-02", "2026-02-02")
	lr.DurationType = leave.LeaveDurationHalfDayMorning

	generic := approvedLeave("lr2", "e1", "Sick Leave", "2026-02-03", "2026-02-03")

	snap := calendar.NewSnapshot(date("2026-02-10"), nil, []leave.LeaveRequest{lr, generic}, nil)

	status := ClassifyDay(emp, date("2026-02-02"), snap)
	assert.Equal(t, calendar.DayStatusAnnualLeave, status.Kind)
	assert.Equal(t, calendar.HalfDayMorning, status.HalfDay)
	assert.Equal(t, "Annual Leave (morning)", status.Tooltip)

	status = ClassifyDay(emp, date("2026-02-03"), snap)
	assert.Equal(t, calendar.DayStatusLeave, status.Kind)
	assert.Equal(t, calendar.HalfDayNone, status.HalfDay)
	assert.Equal(t, "Sick Leave", status.Tooltip)
}

func TestDescribe_Locale(t *testing.T) {
	status := Describe("id", calendar.DayStatus{Kind: calendar.DayStatusHoliday, HolidayName: "Nyepi"})
	assert.Equal(t, "Libur", status.Label)

	status = Describe("en", calendar.DayStatus{Kind: calendar.DayStatusLate, LateMinutes: 15})
	assert.Equal(t, "Late", status.Label)
	assert.Equal(t, "Clocked in 15 minutes late", status.Tooltip)
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "6.75", FormatHours(405))
	assert.Equal(t, "8", FormatHours(480))
	assert.Equal(t, "0.33", FormatHours(20))
	assert.Equal(t, "0", FormatHours(0))
}

func TestClassifyDay_ConcurrentReads(t *testing.T) {
	emp := weekdayEmployee("e1")
	snap := calendar.NewSnapshot(
		date("2026-02-10"),
		[]holiday.PublicHoliday{{ID: "h1", Date: date("2026-02-03"), Name: "Founders Day", IsActive: true}},
		[]leave.LeaveRequest{approvedLeave("lr1", "e1", "Annual Leave", "2026-02-04", "2026-02-04")},
		[]attendance.Attendance{record("e1", "2026-02-05", 480, attendance.StatusPresent)},
	)
	want := AggregateRange(emp, []time.Time{date("2026-02-02"), date("2026-02-03"), date("2026-02-04"), date("2026-02-05")}, snap)

	var wg sync.WaitGroup
	results := make([]calendar.Summary, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = AggregateRange(emp, []time.Time{date("2026-02-02"), date("2026-02-03"), date("2026-02-04"), date("2026-02-05")}, snap)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
