package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	MyHistory(w http.ResponseWriter, r *http.Request)
	UpdateMyReason(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListErrors(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MarkError(w http.ResponseWriter, r *http.Request)
	BatchApprove(w http.ResponseWriter, r *http.Request)
	BatchReject(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req attendance.CheckInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	var req attendance.CheckOutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check out successful", result)
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetTodayStatus(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyHistory(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}

	filter := attendance.HistoryFilter{
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
	}
	var err error
	if filter.Month, err = queryInt(r, "month"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Year, err = queryInt(r, "year"); err != nil {
		response.HandleError(w, err)
		return
	}
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListMyHistory(r.Context(), employeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateMyReason implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateMyReason(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := callerEmployeeID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req attendance.UpdateReasonRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.UpdateMyReason(r.Context(), employeeID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Reason updated successfully", result)
}

func parseAttendanceFilter(r *http.Request) (attendance.AttendanceFilter, error) {
	filter := attendance.AttendanceFilter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		WorkDate:   queryString(r, "work_date"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
	}

	page, limit, err := queryPage(r)
	if err != nil {
		return filter, err
	}
	filter.Page, filter.Limit = page, limit

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

func parsePageRequest(r *http.Request) (attendance.PageRequest, error) {
	page, limit, err := queryPage(r)
	if err != nil {
		return attendance.PageRequest{}, err
	}
	req := attendance.PageRequest{Page: page, Limit: limit}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListPending implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListPending(r.Context(), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListErrors implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListErrors(w http.ResponseWriter, r *http.Request) {
	page, err := parsePageRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.ListErrors(r.Context(), page)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Stats implements AttendanceHandler.
func (h *attendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseAttendanceFilter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.attendanceService.Export(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := "attendance.xlsx"
	if filter.StartDate != nil && filter.EndDate != nil {
		filename = fmt.Sprintf("attendance_%s_%s.xlsx", *filter.StartDate, *filter.EndDate)
	}
	response.File(w, xlsxContentType, filename, data)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req attendance.UpdateAttendanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Update(r.Context(), adminID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Approve implements AttendanceHandler.
func (h *attendanceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req attendance.ApproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Approve(r.Context(), adminID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance approved successfully", result)
}

// Reject implements AttendanceHandler.
func (h *attendanceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req attendance.RejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Reject(r.Context(), adminID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Attendance rejected successfully"
	if req.HasCorrection() {
		message = "Attendance corrected successfully"
	}
	response.SuccessWithMessage(w, message, result)
}

// MarkError implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkError(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	var req attendance.MarkErrorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MarkError(r.Context(), adminID, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked as error", result)
}

// BatchApprove implements AttendanceHandler.
func (h *attendanceHandlerImpl) BatchApprove(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	var req attendance.BatchApproveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.BatchApprove(r.Context(), adminID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d attendance records approved", len(results)), results)
}

// BatchReject implements AttendanceHandler.
func (h *attendanceHandlerImpl) BatchReject(w http.ResponseWriter, r *http.Request) {
	adminID, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	var req attendance.BatchRejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.attendanceService.BatchReject(r.Context(), adminID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("%d attendance records rejected", len(results)), results)
}
