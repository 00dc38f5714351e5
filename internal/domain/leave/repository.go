package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error

	// ListOpenByEmployee returns the employee's pending and approved requests, used for overlap checks
	ListOpenByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)

	// ListApprovedByCategory returns approved requests of a category intersecting [from, to]
	ListApprovedByCategory(ctx context.Context, employeeID string, category Category, from, to time.Time) ([]LeaveRequest, error)

	// ListByEmployeeBetween returns every request intersecting [from, to] with type name and category joined
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	ListByEmployee(ctx context.Context, employeeID string, filter MyLeaveFilter) ([]LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
}
