package attendance

import (
	"time"
)

// StandardWorkMinutes is a full working day before any status downgrade.
const StandardWorkMinutes = 8 * 60

type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusEarlyLeave Status = "early_leave"
	StatusMissing    Status = "missing"
)

var StatusValues = []string{
	string(StatusPresent),
	string(StatusLate),
	string(StatusEarlyLeave),
	string(StatusMissing),
}

// Source tags where a record came from.
type Source string

const (
	SourceClock  Source = "clock"
	SourceImport Source = "import"
)

// Attendance is one employee's record for one date. Records are append-only
// and unique per (EmployeeID, Date).
type Attendance struct {
	ID                 string
	EmployeeID         string
	Date               time.Time
	ClockIn            *time.Time
	ClockOut           *time.Time
	WorkHoursInMinutes int
	LateMinutes        int
	Status             Status
	Source             Source
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TotalHours returns worked time in hours.
func (a Attendance) TotalHours() float64 {
	return float64(a.WorkHoursInMinutes) / 60
}

// AttendanceFilter selects records in an inclusive date range. An empty
// EmployeeIDs slice selects every employee.
type AttendanceFilter struct {
	EmployeeIDs []string
	StartDate   time.Time
	EndDate     time.Time
}
