package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	UpdateRequest(w http.ResponseWriter, r *http.Request)
	DeleteRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	GetMySummary(w http.ResponseWriter, r *http.Request)
	GetMySummaryPDF(w http.ResponseWriter, r *http.Request)

	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	BatchApprove(w http.ResponseWriter, r *http.Request)
	BatchReject(w http.ResponseWriter, r *http.Request)
	GetEmployeeSummary(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	clock        clock.Clock
}

func NewLeaveHandler(leaveService leave.LeaveService, clk clock.Clock) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		clock:        clk,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", result)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req leave.UpdateLeaveTypeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.UpdateType(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", result)
}

// ListTypes implements LeaveHandler. Only admins may ask for inactive types with ?all=true.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := true
	if identity, ok := middleware.IdentityFrom(r.Context()); ok && identity.IsAdmin() {
		activeOnly = r.URL.Query().Get("all") != "true"
	}

	results, err := l.leaveService.ListTypes(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.Submit(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// UpdateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req leave.UpdateLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.Update(r.Context(), employeeID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", result)
}

// DeleteRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	if err := l.leaveService.Delete(r.Context(), employeeID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

// parseDateFilter fills the filter fields shared by the self-service and admin lists.
func parseDateFilter(r *http.Request, status, leaveTypeID, startDate, endDate **string, month, year **int) error {
	*status = queryString(r, "status")
	*leaveTypeID = queryString(r, "leave_type_id")
	*startDate = queryString(r, "start_date")
	*endDate = queryString(r, "end_date")

	var err error
	if *month, err = queryInt(r, "month"); err != nil {
		return err
	}
	if *year, err = queryInt(r, "year"); err != nil {
		return err
	}
	return nil
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var filter leave.MyLeaveFilter
	if err := parseDateFilter(r, &filter.Status, &filter.LeaveTypeID, &filter.StartDate, &filter.EndDate, &filter.Month, &filter.Year); err != nil {
		response.HandleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Limit = limit

	results, err := l.leaveService.ListMine(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// year reads ?year=, defaulting to the current year.
func (l *LeaveHandlerImpl) year(r *http.Request) (int, error) {
	year, err := queryInt(r, "year")
	if err != nil {
		return 0, err
	}
	if year == nil {
		return l.clock.Now().Year(), nil
	}
	return *year, nil
}

// GetMySummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	l.writeSummary(w, r, employeeID)
}

// GetEmployeeSummary implements LeaveHandler.
func (l *LeaveHandlerImpl) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	l.writeSummary(w, r, chi.URLParam(r, "id"))
}

func (l *LeaveHandlerImpl) writeSummary(w http.ResponseWriter, r *http.Request, employeeID string) {
	year, err := l.year(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.GetSummary(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMySummaryPDF implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMySummaryPDF(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	year, err := l.year(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := l.leaveService.ExportSummaryPDF(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, "application/pdf", fmt.Sprintf("leave_summary_%d.pdf", year), data)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	var filter leave.LeaveFilter
	if err := parseDateFilter(r, &filter.Status, &filter.LeaveTypeID, &filter.StartDate, &filter.EndDate, &filter.Month, &filter.Year); err != nil {
		response.HandleError(w, err)
		return
	}
	filter.EmployeeID = queryString(r, "employee_id")

	page, limit, err := queryPage(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Page, filter.Limit = page, limit

	results, err := l.leaveService.ListAll(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListPendingRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	page, limit, err := queryPage(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := l.leaveService.ListPending(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := l.leaveService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	result, err := l.leaveService.Approve(r.Context(), adminID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", result)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req leave.RejectLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.Reject(r.Context(), adminID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected successfully", result)
}

// BatchApprove implements LeaveHandler.
func (l *LeaveHandlerImpl) BatchApprove(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	var req leave.BatchApproveLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := l.leaveService.BatchApprove(r.Context(), adminID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d leave requests approved", len(results)), results)
}

// BatchReject implements LeaveHandler.
func (l *LeaveHandlerImpl) BatchReject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	var req leave.BatchRejectLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := l.leaveService.BatchReject(r.Context(), adminID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d leave requests rejected", len(results)), results)
}
