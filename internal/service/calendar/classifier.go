package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/i18n"
)

// ClassifyDay resolves one employee's status on date from snap. Sources are
// consulted in a fixed order and the first match wins:
//
//  1. an active public holiday
//  2. approved leave covering the date
//  3. an attendance record
//  4. a past working day with no record (absent)
//  5. a non-working day for this employee (off day)
//  6. anything else, such as today or a future date (empty)
//
// Labels are rendered in the default locale; use Describe to re-render.
func ClassifyDay(emp employee.Employee, date time.Time, snap *calendar.Snapshot) calendar.DayStatus {
	return Describe(i18n.DefaultLocale(), classify(emp, dateutil.Truncate(date), snap))
}

func classify(emp employee.Employee, date time.Time, snap *calendar.Snapshot) calendar.DayStatus {
	status := calendar.DayStatus{Date: date}

	if h, ok := snap.HolidayOn(date); ok {
		status.Kind = calendar.DayStatusHoliday
		status.HolidayName = h.Name
		status.Paid = true
		return status
	}

	if lr, ok := snap.LeaveOn(emp.ID, date); ok {
		status.Kind = calendar.DayStatusLeave
		if lr.IsAnnual() {
			status.Kind = calendar.DayStatusAnnualLeave
		}
		status.LeaveRequestID = lr.ID
		status.LeaveTypeName = lr.LeaveTypeName
		status.HalfDay = calendar.HalfDayPeriod(lr.HalfDayPeriod())
		status.Paid = true
		return status
	}

	if rec, ok := snap.RecordOn(emp.ID, date); ok {
		status.Kind = classifyRecord(rec, snap.FullDayMinutes())
		status.WorkMinutes = rec.WorkHoursInMinutes
		status.LateMinutes = rec.LateMinutes
		status.Paid = status.Kind.IsPaid()
		return status
	}

	working := emp.WorkingDays.Contains(date.Weekday())
	switch {
	case working && date.Before(snap.Today):
		status.Kind = calendar.DayStatusAbsent
	case !working:
		status.Kind = calendar.DayStatusOffDay
	default:
		status.Kind = calendar.DayStatusEmpty
	}
	return status
}

// classifyRecord prefers an explicit late or early-leave tag over worked time.
func classifyRecord(rec attendance.Attendance, fullDayMinutes int) calendar.DayStatusKind {
	switch rec.Status {
	case attendance.StatusLate:
		return calendar.DayStatusLate
	case attendance.StatusEarlyLeave:
		return calendar.DayStatusEarlyLeave
	}

	switch {
	case rec.WorkHoursInMinutes >= fullDayMinutes:
		return calendar.DayStatusFull
	case rec.WorkHoursInMinutes > 0:
		return calendar.DayStatusHalf
	default:
		return calendar.DayStatusNoHours
	}
}
