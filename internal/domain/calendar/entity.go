package calendar

import "time"

// DayStatusKind is the single authoritative status of an employee on a date.
type DayStatusKind string

const (
	DayStatusHoliday     DayStatusKind = "holiday"
	DayStatusAnnualLeave DayStatusKind = "annual_leave"
	DayStatusLeave       DayStatusKind = "leave"
	DayStatusLate        DayStatusKind = "late"
	DayStatusEarlyLeave  DayStatusKind = "early_leave"
	DayStatusFull        DayStatusKind = "full"
	DayStatusHalf        DayStatusKind = "half"
	DayStatusNoHours     DayStatusKind = "no_hours"
	DayStatusAbsent      DayStatusKind = "absent"
	DayStatusOffDay      DayStatusKind = "off_day"
	DayStatusEmpty       DayStatusKind = "empty"
)

var DayStatusKinds = []DayStatusKind{
	DayStatusHoliday,
	DayStatusAnnualLeave,
	DayStatusLeave,
	DayStatusLate,
	DayStatusEarlyLeave,
	DayStatusFull,
	DayStatusHalf,
	DayStatusNoHours,
	DayStatusAbsent,
	DayStatusOffDay,
	DayStatusEmpty,
}

func (k DayStatusKind) IsValid() bool {
	for _, kind := range DayStatusKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsPaidLeave reports whether the day is paid without being worked.
func (k DayStatusKind) IsPaidLeave() bool {
	switch k {
	case DayStatusHoliday, DayStatusAnnualLeave, DayStatusLeave:
		return true
	}
	return false
}

// WorkingDayWeight is the day's contribution to the working-days count.
func (k DayStatusKind) WorkingDayWeight() float64 {
	switch k {
	case DayStatusFull, DayStatusLate:
		return 1
	case DayStatusHalf:
		return 0.5
	}
	return 0
}

// IsPaid reports whether the day contributes to total paid days.
func (k DayStatusKind) IsPaid() bool {
	return k.IsPaidLeave() || k.WorkingDayWeight() > 0
}

// HalfDayPeriod tags half-day leave. Empty for every other status.
type HalfDayPeriod string

const (
	HalfDayNone      HalfDayPeriod = ""
	HalfDayMorning   HalfDayPeriod = "morning"
	HalfDayAfternoon HalfDayPeriod = "afternoon"
)

// DayStatus is derived on demand and never persisted.
type DayStatus struct {
	Date    time.Time
	Kind    DayStatusKind
	Label   string
	Tooltip string
	Paid    bool

	HalfDay        HalfDayPeriod
	HolidayName    string
	LeaveRequestID string
	LeaveTypeName  string
	WorkMinutes    int
	LateMinutes    int
}

// Summary accumulates one employee's statuses over a date range.
type Summary struct {
	EmployeeID string
	From       time.Time
	To         time.Time

	WorkingDaysCount  float64
	AnnualLeaveDays   int
	LeaveDays         int
	PublicHolidayDays int
	PaidLeaveDays     int
	TotalPaidDays     float64

	Present        int
	Late           int
	Absent         int
	EarlyLeave     int
	NoHours        int
	OffDays        int
	AttendanceRate int

	Days []DayStatus
}

// FleetSummary totals present, late and absent across employees.
type FleetSummary struct {
	From           time.Time
	To             time.Time
	Present        int
	Late           int
	Absent         int
	AttendanceRate int
	Employees      []Summary
}

// LaneInterval is a date-ranged item to lay out on a calendar.
type LaneInterval struct {
	ID    string
	Start time.Time
	End   time.Time
}

// LaneAssignment places an interval on a display lane. Lanes are a
// rendering aid with no business meaning.
type LaneAssignment struct {
	LaneInterval
	Lane int
}
