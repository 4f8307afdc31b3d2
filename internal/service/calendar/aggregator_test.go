package calendar

import (
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weekSnapshot() *calendar.Snapshot {
	return calendar.NewSnapshot(
		date("2026-02-10"),
		[]holiday.PublicHoliday{{ID: "h1", Date: date("2026-02-02"), Name: "Founders Day", IsActive: true}},
		[]leave.LeaveRequest{
			approvedLeave("lr1", "e1", "Annual Leave", "2026-02-03", "2026-02-03"),
			approvedLeave("lr2", "e2", "Sick Leave", "2026-02-05", "2026-02-06"),
		},
		[]attendance.Attendance{
			record("e1", "2026-02-04", 480, attendance.StatusPresent),
			record("e1", "2026-02-05", 240, attendance.StatusPresent),
			record("e1", "2026-02-06", 470, attendance.StatusLate),
			record("e2", "2026-02-03", 480, attendance.StatusPresent),
		},
	)
}

func TestAggregateRange(t *testing.T) {
	emp := weekdayEmployee("e1")
	days := dateutil.Range(date("2026-02-02"), date("2026-02-08"))

	summary := AggregateRange(emp, days, weekSnapshot())

	require.Len(t, summary.Days, 7)
	assert.Equal(t, "e1", summary.EmployeeID)
	assert.Equal(t, date("2026-02-02"), summary.From)
	assert.Equal(t, date("2026-02-08"), summary.To)

	assert.Equal(t, 2.5, summary.WorkingDaysCount)
	assert.Equal(t, 1, summary.PublicHolidayDays)
	assert.Equal(t, 1, summary.AnnualLeaveDays)
	assert.Equal(t, 0, summary.LeaveDays)
	assert.Equal(t, 2, summary.PaidLeaveDays)
	assert.Equal(t, 4.5, summary.TotalPaidDays)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 0, summary.Absent)
	assert.Equal(t, 2, summary.OffDays)
	assert.Equal(t, 100, summary.AttendanceRate)
}

func TestAggregateRange_PaidDaysIdentity(t *testing.T) {
	snap := weekSnapshot()
	ranges := [][2]string{
		{"2026-02-01", "2026-02-28"},
		{"2026-02-03", "2026-02-03"},
		{"2026-01-29", "2026-02-12"},
	}

	for _, id := range []string{"e1", "e2", "e3"} {
		for _, r := range ranges {
			summary := AggregateRange(weekdayEmployee(id), dateutil.Range(date(r[0]), date(r[1])), snap)
			assert.Equal(t, summary.WorkingDaysCount+float64(summary.PaidLeaveDays), summary.TotalPaidDays, "%s %v", id, r)
		}
	}
}

func TestAggregateRange_Empty(t *testing.T) {
	summary := AggregateRange(weekdayEmployee("e1"), nil, weekSnapshot())
	assert.Empty(t, summary.Days)
	assert.Zero(t, summary.TotalPaidDays)
	assert.Zero(t, summary.AttendanceRate)
}

func TestAggregateFleet(t *testing.T) {
	emps := []employee.Employee{weekdayEmployee("e1"), weekdayEmployee("e2")}
	days := dateutil.Range(date("2026-02-02"), date("2026-02-08"))

	fleet := AggregateFleet(emps, days, weekSnapshot())

	require.Len(t, fleet.Employees, 2)
	e2 := fleet.Employees[1]
	// e2: holiday, full, absent, leave, leave, off, off
	assert.Equal(t, 1, e2.Present)
	assert.Equal(t, 1, e2.Absent)
	assert.Equal(t, 2, e2.LeaveDays)

	assert.Equal(t, 3, fleet.Present)
	assert.Equal(t, 1, fleet.Late)
	assert.Equal(t, 1, fleet.Absent)
	assert.Equal(t, 80, fleet.AttendanceRate)
	assert.Equal(t, date("2026-02-02"), fleet.From)
	assert.Equal(t, date("2026-02-08"), fleet.To)
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 0, AttendanceRate(0, 0, 0))
	assert.Equal(t, 100, AttendanceRate(3, 1, 0))
	assert.Equal(t, 75, AttendanceRate(2, 1, 1))
	assert.Equal(t, 67, AttendanceRate(2, 0, 1))
	assert.Equal(t, 33, AttendanceRate(1, 0, 2))
	assert.Equal(t, 0, AttendanceRate(0, 0, 5))
}
