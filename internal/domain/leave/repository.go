package leave

import (
	"context"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List returns requests overlapping the filter's date range.
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
	// UpdateStatus persists a resolution. It fails with
	// ErrLeaveRequestAlreadyProcessed if the stored request is no longer pending.
	UpdateStatus(ctx context.Context, request LeaveRequest) error
}
