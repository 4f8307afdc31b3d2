package leave

import "context"

type LeaveService interface {
	ListRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, req ApproveLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, req CancelLeaveRequest) (LeaveRequestResponse, error)
}
