package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInvalidLeaveStatus):
		BadRequest(w, "Invalid leave request status", nil)

	// Import domain errors
	case errors.Is(err, importer.ErrFileTooLarge):
		PayloadTooLarge(w, "File exceeds the upload limit")
	case errors.Is(err, importer.ErrStructural):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, importer.ErrSessionNotFound):
		NotFound(w, "Import session not found or expired")
	case errors.Is(err, importer.ErrInvalidTransition):
		Conflict(w, "Action not allowed at the current import step")
	case errors.Is(err, importer.ErrUnresolvedRows):
		Conflict(w, "Import has rows with errors; fix them or skip invalid rows")
	case errors.Is(err, importer.ErrMappingIncomplete):
		BadRequest(w, "Every field must be mapped before preview", nil)
	case errors.Is(err, importer.ErrUnknownField),
		errors.Is(err, importer.ErrColumnOutOfRange),
		errors.Is(err, importer.ErrColumnAlreadyBound):
		BadRequest(w, err.Error(), nil)

	// Holiday domain errors
	case errors.Is(err, holiday.ErrInvalidRecurrence):
		slog.Error("holiday calendar misconfigured", "error", err)
		InternalServerError(w, "Holiday calendar is misconfigured")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
