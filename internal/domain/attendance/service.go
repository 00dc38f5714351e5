package attendance

import "context"

// AttendanceService defines business logic for attendance operations.
// employeeID is the acting employee; adminID is the acting administrator's user id.
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	GetTodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)
	ListMyHistory(ctx context.Context, employeeID string, filter HistoryFilter) ([]AttendanceResponse, error)
	UpdateMyReason(ctx context.Context, employeeID, recordID string, req UpdateReasonRequest) (AttendanceResponse, error)

	GetRecord(ctx context.Context, recordID string) (AttendanceResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	ListPending(ctx context.Context, page PageRequest) (ListAttendanceResponse, error)
	ListErrors(ctx context.Context, page PageRequest) (ListAttendanceResponse, error)
	Stats(ctx context.Context) (StatsResponse, error)

	Approve(ctx context.Context, adminID, recordID string, req ApproveRequest) (AttendanceResponse, error)
	Reject(ctx context.Context, adminID, recordID string, req RejectRequest) (AttendanceResponse, error)
	MarkError(ctx context.Context, adminID, recordID string, req MarkErrorRequest) (AttendanceResponse, error)
	BatchApprove(ctx context.Context, adminID string, req BatchApproveRequest) ([]AttendanceResponse, error)
	BatchReject(ctx context.Context, adminID string, req BatchRejectRequest) ([]AttendanceResponse, error)
	Update(ctx context.Context, adminID, recordID string, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// Export renders the filtered records as an XLSX workbook
	Export(ctx context.Context, filter AttendanceFilter) ([]byte, error)
}
