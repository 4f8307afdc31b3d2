package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
)

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending   LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved  LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected  LeaveRequestStatus = "rejected"
	LeaveRequestStatusCancelled LeaveRequestStatus = "cancelled"
)

var LeaveRequestStatusValues = []string{
	string(LeaveRequestStatusPending),
	string(LeaveRequestStatusApproved),
	string(LeaveRequestStatusRejected),
	string(LeaveRequestStatusCancelled),
}

func (s LeaveRequestStatus) IsValid() bool {
	switch s {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved,
		LeaveRequestStatusRejected, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

// IsResolved reports whether the request has left the pending state.
// Resolved statuses are terminal.
func (s LeaveRequestStatus) IsResolved() bool {
	return s != LeaveRequestStatusPending
}

// LeaveDurationEnum maps to leave_duration_enum in DB
type LeaveDurationEnum string

const (
	LeaveDurationFullDay          LeaveDurationEnum = "full_day"
	LeaveDurationHalfDayMorning   LeaveDurationEnum = "half_day_morning"
	LeaveDurationHalfDayAfternoon LeaveDurationEnum = "half_day_afternoon"
)

// LeaveRequest entity
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	LeaveTypeName string

	StartDate time.Time
	EndDate   time.Time

	DurationType LeaveDurationEnum
	TotalDays    float64
	Reason       string

	Status          LeaveRequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string

	CancelledAt        *time.Time
	CancellationReason *string

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	EmployeeName *string
}

// Covers reports whether date falls inside the request's inclusive range.
func (r LeaveRequest) Covers(date time.Time) bool {
	return dateutil.Within(date, r.StartDate, r.EndDate)
}

// IsAnnual reports whether the leave type is annual leave.
func (r LeaveRequest) IsAnnual() bool {
	return strings.Contains(strings.ToLower(r.LeaveTypeName), "annual")
}

func (r LeaveRequest) IsHalfDay() bool {
	return r.DurationType == LeaveDurationHalfDayMorning || r.DurationType == LeaveDurationHalfDayAfternoon
}

// HalfDayPeriod returns "morning" or "afternoon" for half-day leave, "" otherwise.
func (r LeaveRequest) HalfDayPeriod() string {
	switch r.DurationType {
	case LeaveDurationHalfDayMorning:
		return "morning"
	case LeaveDurationHalfDayAfternoon:
		return "afternoon"
	}
	return ""
}

// Resolve moves a pending request to next. Resolved requests cannot change again.
func (r *LeaveRequest) Resolve(next LeaveRequestStatus, at time.Time) error {
	if !next.IsValid() || next == LeaveRequestStatusPending {
		return ErrInvalidLeaveStatus
	}
	if r.Status.IsResolved() {
		return ErrLeaveRequestAlreadyProcessed
	}

	r.Status = next
	switch next {
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected:
		r.ApprovedAt = &at
	case LeaveRequestStatusCancelled:
		r.CancelledAt = &at
	}
	r.UpdatedAt = at
	return nil
}
