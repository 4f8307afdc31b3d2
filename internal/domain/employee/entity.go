package employee

import "time"

type Employee struct {
	ID               string
	EmployeeCode     string
	FullName         string
	EmploymentStatus EmploymentStatus
	WorkingDays      WorkingDays
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

// WorkingDays is the set of weekdays an employee is scheduled to work,
// stored as a bitmask indexed by time.Weekday (0=Sunday ... 6=Saturday).
type WorkingDays uint8

// NewWorkingDays builds a set from weekday indices 0-6.
func NewWorkingDays(indices ...int) (WorkingDays, error) {
	var wd WorkingDays
	for _, i := range indices {
		if i < 0 || i > 6 {
			return 0, ErrInvalidWorkingDay
		}
		wd |= 1 << uint(i)
	}
	return wd, nil
}

// WorkingDaysFromSchedule converts ISO days of week (1=Monday ... 7=Sunday),
// as stored on work schedule times, into a WorkingDays set.
func WorkingDaysFromSchedule(isoDays ...int) (WorkingDays, error) {
	indices := make([]int, 0, len(isoDays))
	for _, d := range isoDays {
		if d < 1 || d > 7 {
			return 0, ErrInvalidWorkingDay
		}
		indices = append(indices, d%7)
	}
	return NewWorkingDays(indices...)
}

func (wd WorkingDays) Contains(d time.Weekday) bool {
	return wd&(1<<uint(d)) != 0
}

// Indices returns the weekday indices in ascending order.
func (wd WorkingDays) Indices() []int {
	indices := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		if wd.Contains(time.Weekday(i)) {
			indices = append(indices, i)
		}
	}
	return indices
}

func (e Employee) IsActive() bool {
	return e.EmploymentStatus == EmploymentStatusActive
}
