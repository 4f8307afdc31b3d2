package calendar

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single calendar or summary request.
const MaxRangeDays = 366

type EmployeeCalendarQuery struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

func (q *EmployeeCalendarQuery) Validate() error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	return validateRange(q.StartDate, q.EndDate)
}

type FleetSummaryQuery struct {
	StartDate   string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	EmployeeIDs []string `json:"employee_ids,omitempty" validate:"omitempty,dive,required"`
	IncludeDays bool     `json:"include_days"`
}

func (q *FleetSummaryQuery) Validate() error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	return validateRange(q.StartDate, q.EndDate)
}

type LeaveLaneQuery struct {
	StartDate  string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     string  `json:"status,omitempty" validate:"omitempty,oneof=pending approved"`
}

func (q *LeaveLaneQuery) Validate() error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	return validateRange(q.StartDate, q.EndDate)
}

// ParseRange parses two already validated YYYY-MM-DD strings.
func ParseRange(start, end string) (time.Time, time.Time) {
	from, _ := validator.IsValidDate(start)
	to, _ := validator.IsValidDate(end)
	return from, to
}

func validateRange(start, end string) error {
	from, to := ParseRange(start, end)
	if to.Before(from) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	if int(to.Sub(from).Hours()/24)+1 > MaxRangeDays {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: fmt.Sprintf("date range must not exceed %d days", MaxRangeDays),
		}}
	}
	return nil
}

type DayStatusResponse struct {
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	Label          string  `json:"label"`
	Tooltip        string  `json:"tooltip,omitempty"`
	Paid           bool    `json:"paid"`
	HalfDay        string  `json:"half_day,omitempty"`
	HolidayName    string  `json:"holiday_name,omitempty"`
	LeaveRequestID string  `json:"leave_request_id,omitempty"`
	LeaveTypeName  string  `json:"leave_type_name,omitempty"`
	WorkHours      float64 `json:"work_hours,omitempty"`
	LateMinutes    int     `json:"late_minutes,omitempty"`
}

type SummaryResponse struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      string  `json:"employee_name,omitempty"`
	WorkingDaysCount  float64 `json:"working_days_count"`
	AnnualLeaveDays   int     `json:"annual_leave_days"`
	LeaveDays         int     `json:"leave_days"`
	PublicHolidayDays int     `json:"public_holiday_days"`
	PaidLeaveDays     int     `json:"paid_leave_days"`
	TotalPaidDays     float64 `json:"total_paid_days"`
	Present           int     `json:"present"`
	Late              int     `json:"late"`
	Absent            int     `json:"absent"`
	EarlyLeave        int     `json:"early_leave"`
	NoHours           int     `json:"no_hours"`
	OffDays           int     `json:"off_days"`
	AttendanceRate    int     `json:"attendance_rate"`

	Days []DayStatusResponse `json:"days,omitempty"`
}

type EmployeeCalendarResponse struct {
	EmployeeID   string              `json:"employee_id"`
	EmployeeCode string              `json:"employee_code"`
	EmployeeName string              `json:"employee_name"`
	WorkingDays  []int               `json:"working_days"`
	StartDate    string              `json:"start_date"`
	EndDate      string              `json:"end_date"`
	Today        string              `json:"today"`
	Days         []DayStatusResponse `json:"days"`
	Summary      SummaryResponse     `json:"summary"`
}

type FleetSummaryResponse struct {
	StartDate      string            `json:"start_date"`
	EndDate        string            `json:"end_date"`
	Present        int               `json:"present"`
	Late           int               `json:"late"`
	Absent         int               `json:"absent"`
	AttendanceRate int               `json:"attendance_rate"`
	Employees      []SummaryResponse `json:"employees"`
}

type LeaveLaneItem struct {
	LeaveRequestID string `json:"leave_request_id"`
	EmployeeID     string `json:"employee_id"`
	EmployeeName   string `json:"employee_name,omitempty"`
	LeaveTypeName  string `json:"leave_type_name"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	HalfDay        string `json:"half_day,omitempty"`
	Lane           int    `json:"lane"`
}

type LeaveLaneResponse struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	LaneCount int             `json:"lane_count"`
	Items     []LeaveLaneItem `json:"items"`
}
