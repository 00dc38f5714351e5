package attendance

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CheckInRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CheckInRequest) Validate() error {
	return validator.Struct(r)
}

type CheckOutRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CheckOutRequest) Validate() error {
	return validator.Struct(r)
}

type UpdateReasonRequest struct {
	Reason string `json:"reason" validate:"notblank,max=500"`
}

func (r *UpdateReasonRequest) Validate() error {
	return validator.Struct(r)
}

type TodayStatusResponse struct {
	WorkDate     string  `json:"work_date"`
	HasRecord    bool    `json:"has_record"`
	CanCheckIn   bool    `json:"can_check_in"`
	CanCheckOut  bool    `json:"can_check_out"`
	IsCompleted  bool    `json:"is_completed"`
	ActionNeeded Action  `json:"action_needed"`
	IsHoliday    bool    `json:"is_holiday"`
	HolidayName  *string `json:"holiday_name,omitempty"`
	IsWeekend    bool    `json:"is_weekend"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	Status       *Status `json:"status,omitempty"`
}

// MaxRecentHistory caps the limit-only history query.
const MaxRecentHistory = 50

type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Month     *int    `json:"month,omitempty"`
	Year      *int    `json:"year,omitempty"`
	Limit     *int    `json:"limit,omitempty"`

	start, end *time.Time
}

// HasRange reports whether any date filter was given.
func (f HistoryFilter) HasRange() bool {
	return f.StartDate != nil || f.EndDate != nil || f.Month != nil || f.Year != nil
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Limit != nil && *f.Limit <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}

	if (f.Month == nil) != (f.Year == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month and year must be provided together",
		})
	} else if f.Month != nil {
		start, end, err := utils.MonthRange(*f.Year, *f.Month)
		if err != nil {
			field := "month"
			if errors.Is(err, utils.ErrInvalidYear) {
				field = "year"
			}
			errs = append(errs, validator.ValidationError{Field: field, Message: err.Error()})
		} else {
			f.start, f.end = &start, &end
		}
	}

	if f.StartDate != nil {
		if d, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			f.start = &d
		}
	}

	if f.EndDate != nil {
		if d, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			f.end = &d
		}
	}

	if len(errs) == 0 && f.start != nil && f.end != nil && f.start.After(*f.end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: utils.ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range resolves the filter against today: start defaults to one month back, end to today.
func (f HistoryFilter) Range(today time.Time) (time.Time, time.Time) {
	start, end := today.AddDate(0, -1, 0), today
	if f.start != nil {
		start = *f.start
	}
	if f.end != nil {
		end = *f.end
	}
	return start, end
}

// ========================================
// ADMIN DTOs
// ========================================

type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p *PageRequest) Validate() error {
	var errs validator.ValidationErrors

	if p.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if p.Page == 0 {
		p.Page = 1
	}

	if p.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if p.Limit == 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	WorkDate   *string `json:"work_date,omitempty"`  // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	PageRequest
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := f.PageRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, confirmed, error",
		})
	}

	for field, value := range map[string]*string{
		"work_date":  f.WorkDate,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if value == nil || *value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveRequest struct {
	AdminNote *string `json:"admin_note,omitempty" validate:"omitempty,max=500"`
}

func (r *ApproveRequest) Validate() error {
	return validator.Struct(r)
}

// RejectRequest either rejects a record outright or corrects its times.
// When a corrected time is given the record is fixed and confirmed.
type RejectRequest struct {
	Reason            *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	CorrectedCheckIn  *string `json:"corrected_check_in,omitempty"`  // RFC3339
	CorrectedCheckOut *string `json:"corrected_check_out,omitempty"` // RFC3339

	CheckIn  *time.Time `json:"-"`
	CheckOut *time.Time `json:"-"`
}

// HasCorrection reports whether a corrected time was supplied.
func (r RejectRequest) HasCorrection() bool {
	return r.CheckIn != nil || r.CheckOut != nil
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			return err
		}
	}

	r.CheckIn = parseTimestamp(&errs, "corrected_check_in", r.CorrectedCheckIn)
	r.CheckOut = parseTimestamp(&errs, "corrected_check_out", r.CorrectedCheckOut)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkErrorRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *MarkErrorRequest) Validate() error {
	return validator.Struct(r)
}

type BatchApproveRequest struct {
	RecordIDs []string `json:"record_ids" validate:"min=1,max=200,dive,uuid"`
	AdminNote *string  `json:"admin_note,omitempty" validate:"omitempty,max=500"`
}

func (r *BatchApproveRequest) Validate() error {
	return validator.Struct(r)
}

type BatchRejectRequest struct {
	RecordIDs []string `json:"record_ids" validate:"min=1,max=200,dive,uuid"`
	Reason    *string  `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *BatchRejectRequest) Validate() error {
	return validator.Struct(r)
}

// UpdateAttendanceRequest lets an admin fix wrong data, e.g. a forgotten check-out.
type UpdateAttendanceRequest struct {
	CheckIn   *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut  *string `json:"check_out,omitempty"` // RFC3339
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	AdminNote *string `json:"admin_note,omitempty" validate:"omitempty,max=500"`

	CheckInTime  *time.Time `json:"-"`
	CheckOutTime *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, ve...)
		} else {
			return err
		}
	}

	r.CheckInTime = parseTimestamp(&errs, "check_in", r.CheckIn)
	r.CheckOutTime = parseTimestamp(&errs, "check_out", r.CheckOut)

	if r.CheckIn == nil && r.CheckOut == nil && r.Reason == nil && r.AdminNote == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one field must be provided",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func parseTimestamp(errs *validator.ValidationErrors, field string, value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	t, ok := validator.IsValidDateTime(*value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{
			Field:   field,
			Message: field + " must be an RFC3339 timestamp",
		})
		return nil
	}
	return &t
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      *string `json:"employee_name,omitempty"`
	WorkDate          string  `json:"work_date"`
	CheckIn           *string `json:"check_in,omitempty"`
	CheckOut          *string `json:"check_out,omitempty"`
	RequiredWorkHours string  `json:"required_work_hours"`
	WorkHours         string  `json:"work_hours"`
	OvertimeHours     string  `json:"overtime_hours"`
	ExpectedCheckIn   *string `json:"expected_check_in,omitempty"`
	ExpectedCheckOut  *string `json:"expected_check_out,omitempty"`
	Reason            *string `json:"reason,omitempty"`
	AdminNote         *string `json:"admin_note,omitempty"`
	HolidayName       *string `json:"holiday_name,omitempty"`
	Status            Status  `json:"status"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func ToResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		WorkDate:          utils.FormatDate(r.WorkDate),
		CheckIn:           formatTimestamp(r.CheckIn),
		CheckOut:          formatTimestamp(r.CheckOut),
		RequiredWorkHours: r.RequiredWorkHours.StringFixed(2),
		WorkHours:         r.WorkHours.StringFixed(2),
		OvertimeHours:     r.OvertimeHours.StringFixed(2),
		ExpectedCheckIn:   r.ExpectedCheckIn,
		ExpectedCheckOut:  r.ExpectedCheckOut,
		Reason:            r.Reason,
		AdminNote:         r.AdminNote,
		HolidayName:       r.HolidayName,
		Status:            r.Status,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
}

func ToResponses(records []Record) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToResponse(r))
	}
	return out
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Records    []AttendanceResponse `json:"records"`
}

func NewListResponse(records []Record, total int64, page PageRequest) ListAttendanceResponse {
	return ListAttendanceResponse{
		TotalCount: total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(page.Limit))),
		Records:    ToResponses(records),
	}
}

type StatsResponse struct {
	TotalPending   int64 `json:"total_pending"`
	TotalConfirmed int64 `json:"total_confirmed"`
	TotalError     int64 `json:"total_error"`
	TotalRecords   int64 `json:"total_records"`
}
