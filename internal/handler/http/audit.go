package http

import (
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/audit"
	"github.com/cmlabs-hris/attendance-engine/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	AttendanceTrail(w http.ResponseWriter, r *http.Request)
	LeaveTrail(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditService audit.AuditService
}

func NewAuditHandler(auditService audit.AuditService) AuditHandler {
	return &auditHandlerImpl{
		auditService: auditService,
	}
}

// List implements AuditHandler.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.AuditFilter{
		RecordType: queryString(r, "record_type"),
		RecordID:   queryString(r, "record_id"),
		ActorID:    queryString(r, "actor_id"),
		Action:     queryString(r, "action"),
	}
	page, limit, err := queryPage(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	filter.Page, filter.Limit = page, limit

	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.auditService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// AttendanceTrail implements AuditHandler.
func (h *auditHandlerImpl) AttendanceTrail(w http.ResponseWriter, r *http.Request) {
	h.trail(w, r, audit.RecordTypeAttendance)
}

// LeaveTrail implements AuditHandler.
func (h *auditHandlerImpl) LeaveTrail(w http.ResponseWriter, r *http.Request) {
	h.trail(w, r, audit.RecordTypeLeave)
}

func (h *auditHandlerImpl) trail(w http.ResponseWriter, r *http.Request, recordType audit.RecordType) {
	id := chi.URLParam(r, "id")

	results, err := h.auditService.ListByRecord(r.Context(), recordType, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
