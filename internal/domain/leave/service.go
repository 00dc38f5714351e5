package leave

import "context"

type LeaveService interface {
	// Type
	ListTypes(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	GetType(ctx context.Context, id string) (LeaveTypeResponse, error)
	CreateType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)

	// Request, employee side
	Submit(ctx context.Context, employeeID string, req CreateLeaveRequest) (LeaveRequestResponse, error)
	Update(ctx context.Context, employeeID, requestID string, req UpdateLeaveRequest) (LeaveRequestResponse, error)
	Delete(ctx context.Context, employeeID, requestID string) error
	ListMine(ctx context.Context, employeeID string, filter MyLeaveFilter) ([]LeaveRequestResponse, error)

	// Request, admin side
	GetRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListPending(ctx context.Context, page, limit int) (ListLeaveRequestResponse, error)
	ListAll(ctx context.Context, filter LeaveFilter) (ListLeaveRequestResponse, error)
	Approve(ctx context.Context, adminID, requestID string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, adminID, requestID string, req RejectLeaveRequest) (LeaveRequestResponse, error)
	BatchApprove(ctx context.Context, adminID string, req BatchApproveLeaveRequest) ([]LeaveRequestResponse, error)
	BatchReject(ctx context.Context, adminID string, req BatchRejectLeaveRequest) ([]LeaveRequestResponse, error)

	// Entitlement
	GetEntitlement(ctx context.Context, employeeID string, year int) (Entitlement, error)
	GetSummary(ctx context.Context, employeeID string, year int) (LeaveSummaryResponse, error)
	ExportSummaryPDF(ctx context.Context, employeeID string, year int) ([]byte, error)
}
