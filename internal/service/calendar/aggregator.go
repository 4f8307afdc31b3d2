package calendar

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/calendar"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// AggregateRange classifies every date for emp and accumulates the summary.
// TotalPaidDays always equals WorkingDaysCount + PaidLeaveDays.
func AggregateRange(emp employee.Employee, dates []time.Time, snap *calendar.Snapshot) calendar.Summary {
	summary := calendar.Summary{
		EmployeeID: emp.ID,
		Days:       make([]calendar.DayStatus, 0, len(dates)),
	}

	for _, date := range dates {
		status := ClassifyDay(emp, date, snap)
		summary.Days = append(summary.Days, status)
		accumulate(&summary, status)

		if summary.From.IsZero() || status.Date.Before(summary.From) {
			summary.From = status.Date
		}
		if status.Date.After(summary.To) {
			summary.To = status.Date
		}
	}

	summary.TotalPaidDays = summary.WorkingDaysCount + float64(summary.PaidLeaveDays)
	summary.AttendanceRate = AttendanceRate(summary.Present, summary.Late, summary.Absent)
	return summary
}

func accumulate(summary *calendar.Summary, status calendar.DayStatus) {
	summary.WorkingDaysCount += status.Kind.WorkingDayWeight()
	if status.Kind.IsPaidLeave() {
		summary.PaidLeaveDays++
	}

	switch status.Kind {
	case calendar.DayStatusHoliday:
		summary.PublicHolidayDays++
	case calendar.DayStatusAnnualLeave:
		summary.AnnualLeaveDays++
	case calendar.DayStatusLeave:
		summary.LeaveDays++
	case calendar.DayStatusFull, calendar.DayStatusHalf:
		summary.Present++
	case calendar.DayStatusEarlyLeave:
		summary.Present++
		summary.EarlyLeave++
	case calendar.DayStatusLate:
		summary.Late++
	case calendar.DayStatusAbsent:
		summary.Absent++
	case calendar.DayStatusNoHours:
		summary.NoHours++
	case calendar.DayStatusOffDay:
		summary.OffDays++
	}
}

// AggregateFleet summarises every employee over the same dates and totals
// present, late and absent days across the fleet.
func AggregateFleet(emps []employee.Employee, dates []time.Time, snap *calendar.Snapshot) calendar.FleetSummary {
	fleet := calendar.FleetSummary{
		Employees: make([]calendar.Summary, 0, len(emps)),
	}

	for _, emp := range emps {
		summary := AggregateRange(emp, dates, snap)
		fleet.Present += summary.Present
		fleet.Late += summary.Late
		fleet.Absent += summary.Absent
		fleet.Employees = append(fleet.Employees, summary)

		if fleet.From.IsZero() || (!summary.From.IsZero() && summary.From.Before(fleet.From)) {
			fleet.From = summary.From
		}
		if summary.To.After(fleet.To) {
			fleet.To = summary.To
		}
	}

	fleet.AttendanceRate = AttendanceRate(fleet.Present, fleet.Late, fleet.Absent)
	return fleet
}

// AttendanceRate is round(100 * (present+late) / (present+late+absent)), or 0
// when there is nothing to measure.
func AttendanceRate(present, late, absent int) int {
	total := present + late + absent
	if total == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(100 * (present + late))).
		Div(decimal.NewFromInt(int64(total))).
		Round(0).
		IntPart())
}
