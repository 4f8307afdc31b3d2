package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/dateutil"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	withTx database.TxFunc
	now    func() time.Time
}

// NewLeaveService builds the service. A nil withTx runs resolutions without a transaction.
func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, withTx database.TxFunc) leave.LeaveService {
	if withTx == nil {
		withTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		withTx:                 withTx,
		now:                    time.Now,
	}
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}
	return responses, nil
}

// GetRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}
	return toResponse(request), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.resolve(ctx, req.ID, leave.LeaveRequestStatusApproved, func(r *leave.LeaveRequest) {
		r.ApprovedBy = &req.ApproverID
	})
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.resolve(ctx, req.ID, leave.LeaveRequestStatusRejected, func(r *leave.LeaveRequest) {
		r.ApprovedBy = &req.ApproverID
		r.RejectionReason = &req.Reason
	})
}

// Cancel implements leave.LeaveService.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return s.resolve(ctx, req.ID, leave.LeaveRequestStatusCancelled, func(r *leave.LeaveRequest) {
		if req.Reason != "" {
			r.CancellationReason = &req.Reason
		}
	})
}

func (s *LeaveServiceImpl) resolve(ctx context.Context, id string, next leave.LeaveRequestStatus, annotate func(r *leave.LeaveRequest)) (leave.LeaveRequestResponse, error) {
	var request leave.LeaveRequest
	err := s.withTx(ctx, func(txCtx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to get leave request by ID: %w", err)
		}

		if err := request.Resolve(next, s.now()); err != nil {
			return err
		}
		annotate(&request)

		if err := s.LeaveRequestRepository.UpdateStatus(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request resolved", "leave_request_id", request.ID, "status", request.Status)
	return toResponse(request), nil
}

func toResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:                 r.ID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		LeaveTypeID:        r.LeaveTypeID,
		LeaveTypeName:      r.LeaveTypeName,
		StartDate:          dateutil.Key(r.StartDate),
		EndDate:            dateutil.Key(r.EndDate),
		DurationType:       string(r.DurationType),
		HalfDayPeriod:      r.HalfDayPeriod(),
		TotalDays:          r.TotalDays,
		Reason:             r.Reason,
		Status:             string(r.Status),
		ApprovedBy:         r.ApprovedBy,
		ApprovedAt:         r.ApprovedAt,
		RejectionReason:    r.RejectionReason,
		CancelledAt:        r.CancelledAt,
		CancellationReason: r.CancellationReason,
	}
}
