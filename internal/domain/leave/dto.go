package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=pending approved rejected cancelled"`
	StartDate  *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate    *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func (f *LeaveRequestFilter) Validate() error {
	if err := validator.Struct(f); err != nil {
		return err
	}

	if f.StartDate != nil && f.EndDate != nil {
		start, _ := validator.IsValidDate(*f.StartDate)
		end, _ := validator.IsValidDate(*f.EndDate)
		if end.Before(start) {
			return validator.ValidationErrors{{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			}}
		}
	}
	return nil
}

type ApproveLeaveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"approver_id" validate:"required"`
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"approver_id" validate:"required"`
	Reason     string `json:"rejection_reason" validate:"required,max=500"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	if len(errs) == 0 && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "rejection_reason",
			Message: "rejection_reason must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelLeaveRequest struct {
	ID     string `json:"-"`
	Reason string `json:"cancellation_reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CancelLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID                 string     `json:"id"`
	EmployeeID         string     `json:"employee_id"`
	EmployeeName       *string    `json:"employee_name,omitempty"`
	LeaveTypeID        string     `json:"leave_type_id"`
	LeaveTypeName      string     `json:"leave_type_name"`
	StartDate          string     `json:"start_date"`
	EndDate            string     `json:"end_date"`
	DurationType       string     `json:"duration_type"`
	HalfDayPeriod      string     `json:"half_day_period,omitempty"`
	TotalDays          float64    `json:"total_days"`
	Reason             string     `json:"reason,omitempty"`
	Status             string     `json:"status"`
	ApprovedBy         *string    `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	RejectionReason    *string    `json:"rejection_reason,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
}
