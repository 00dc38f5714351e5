package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Carries requested and remaining days in its message
	var entErr *leave.EntitlementError
	if errors.As(err, &entErr) {
		BadRequest(w, entErr.Error(), nil)
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired),
		errors.Is(err, auth.ErrEmployeeIdentityRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidRole):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrDuplicateWorkDate),
		errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrAttendanceAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed),
		errors.Is(err, leave.ErrLeaveOverlap):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeInactive),
		errors.Is(err, leave.ErrFromDateInPast),
		errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, err.Error())

	// Holiday and directory errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayAlreadyExists):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Date helpers and jobs
	case errors.Is(err, utils.ErrInvalidMonth),
		errors.Is(err, utils.ErrInvalidYear),
		errors.Is(err, utils.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, cron.ErrJobNotFound):
		NotFound(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
