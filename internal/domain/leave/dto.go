package leave

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

// ========================================
// LEAVE TYPE DTOs
// ========================================

type CreateLeaveTypeRequest struct {
	Name        string  `json:"name" validate:"notblank,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    string  `json:"category" validate:"required,oneof=annual sick unpaid special compensatory"`
	Status      string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = string(TypeStatusActive)
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,notblank,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=annual sick unpaid special compensatory"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Name == nil && r.Description == nil && r.Category == nil && r.Status == nil {
		return validator.Single("body", "at least one field must be provided")
	}
	return nil
}

type LeaveTypeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Category    Category   `json:"category"`
	Status      TypeStatus `json:"status"`
}

func ToTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    t.Category,
		Status:      t.Status,
	}
}

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id" validate:"required,uuid"`
	FromDate    string  `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate      string  `json:"to_date" validate:"required,datetime=2006-01-02"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=1000"`

	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	from, to, err := parseRange(r.FromDate, r.ToDate)
	if err != nil {
		return err
	}
	r.From, r.To = from, to
	return nil
}

// UpdateLeaveRequest replaces every editable field of a pending request.
type UpdateLeaveRequest CreateLeaveRequest

func (r *UpdateLeaveRequest) Validate() error {
	return (*CreateLeaveRequest)(r).Validate()
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := utils.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, validator.Single("from_date", "from_date must be in YYYY-MM-DD format")
	}
	to, err := utils.ParseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, validator.Single("to_date", "to_date must be in YYYY-MM-DD format")
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, validator.Single("to_date", "to_date must not be before from_date")
	}
	return from, to, nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" validate:"notblank,max=1000"`
}

func (r *RejectLeaveRequest) Validate() error {
	return validator.Struct(r)
}

type BatchApproveLeaveRequest struct {
	RequestIDs []string `json:"request_ids" validate:"min=1,max=200,dive,uuid"`
}

func (r *BatchApproveLeaveRequest) Validate() error {
	return validator.Struct(r)
}

type BatchRejectLeaveRequest struct {
	RequestIDs []string `json:"request_ids" validate:"min=1,max=200,dive,uuid"`
	Reason     string   `json:"reason" validate:"notblank,max=1000"`
}

func (r *BatchRejectLeaveRequest) Validate() error {
	return validator.Struct(r)
}

// dateFilter is shared by the self-service and admin list filters.
type dateFilter struct {
	Status      *string `json:"status,omitempty"`
	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate     *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Month       *int    `json:"month,omitempty"`
	Year        *int    `json:"year,omitempty"`

	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *dateFilter) validate(errs *validator.ValidationErrors) {
	if f.Status != nil && !RequestStatus(*f.Status).IsValid() {
		*errs = append(*errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: pending, approved, rejected",
		})
	}

	if f.LeaveTypeID != nil && !validator.IsValidUUID(*f.LeaveTypeID) {
		*errs = append(*errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id must be a valid UUID",
		})
	}

	// An explicit range wins over month/year.
	if f.StartDate != nil || f.EndDate != nil {
		if f.StartDate != nil {
			if d, ok := validator.IsValidDate(*f.StartDate); ok {
				f.From = &d
			} else {
				*errs = append(*errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
			}
		}
		if f.EndDate != nil {
			if d, ok := validator.IsValidDate(*f.EndDate); ok {
				f.To = &d
			} else {
				*errs = append(*errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
			}
		}
		if f.From != nil && f.To != nil && f.From.After(*f.To) {
			*errs = append(*errs, validator.ValidationError{Field: "start_date", Message: utils.ErrInvalidDateRange.Error()})
		}
		return
	}

	switch {
	case f.Month != nil && f.Year != nil:
		start, end, err := utils.MonthRange(*f.Year, *f.Month)
		if err != nil {
			*errs = append(*errs, validator.ValidationError{Field: "month", Message: err.Error()})
			return
		}
		f.From, f.To = &start, &end
	case f.Year != nil:
		if err := utils.ValidateMonthYear(1, *f.Year); err != nil {
			*errs = append(*errs, validator.ValidationError{Field: "year", Message: err.Error()})
			return
		}
		start, end := utils.YearRange(*f.Year)
		f.From, f.To = &start, &end
	case f.Month != nil:
		*errs = append(*errs, validator.ValidationError{Field: "year", Message: "year is required when month is given"})
	}
}

type MyLeaveFilter struct {
	dateFilter
	Limit *int `json:"limit,omitempty"`
}

func (f *MyLeaveFilter) Validate() error {
	var errs validator.ValidationErrors
	f.dateFilter.validate(&errs)
	if f.Limit != nil && (*f.Limit <= 0 || *f.Limit > 100) {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be between 1 and 100"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveFilter struct {
	dateFilter
	EmployeeID *string `json:"employee_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors
	f.dateFilter.validate(&errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f LeaveFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type LeaveRequestResponse struct {
	ID                string        `json:"id"`
	EmployeeID        string        `json:"employee_id"`
	EmployeeName      *string       `json:"employee_name,omitempty"`
	LeaveTypeID       string        `json:"leave_type_id"`
	LeaveTypeName     *string       `json:"leave_type_name,omitempty"`
	LeaveTypeCategory *Category     `json:"leave_type_category,omitempty"`
	FromDate          string        `json:"from_date"`
	ToDate            string        `json:"to_date"`
	Days              int           `json:"days"`
	Reason            *string       `json:"reason,omitempty"`
	Status            RequestStatus `json:"status"`
	AdminID           *string       `json:"admin_id,omitempty"`
	ProcessedAt       *string       `json:"processed_at,omitempty"`
	RejectionReason   *string       `json:"rejection_reason,omitempty"`
	CreatedAt         string        `json:"created_at"`
	UpdatedAt         string        `json:"updated_at"`
}

func ToRequestResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                r.ID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		LeaveTypeID:       r.LeaveTypeID,
		LeaveTypeName:     r.LeaveTypeName,
		LeaveTypeCategory: r.LeaveTypeCategory,
		FromDate:          utils.FormatDate(r.FromDate),
		ToDate:            utils.FormatDate(r.ToDate),
		Days:              r.Days(),
		Reason:            r.Reason,
		Status:            r.Status,
		AdminID:           r.AdminID,
		RejectionReason:   r.RejectionReason,
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ProcessedAt != nil {
		p := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &p
	}
	return resp
}

func ToRequestResponses(requests []LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, ToRequestResponse(r))
	}
	return out
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

func NewListResponse(requests []LeaveRequest, total int64, page, limit int) ListLeaveRequestResponse {
	return ListLeaveRequestResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		Requests:   ToRequestResponses(requests),
	}
}

// ========================================
// SUMMARY
// ========================================

type TypeBreakdown struct {
	LeaveTypeID   string   `json:"leave_type_id"`
	LeaveTypeName string   `json:"leave_type_name"`
	Category      Category `json:"category"`
	TotalDays     int      `json:"total_days"`
	ApprovedDays  int      `json:"approved_days"`
	PendingDays   int      `json:"pending_days"`
	RejectedDays  int      `json:"rejected_days"`
}

type LeaveSummaryResponse struct {
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Year         int             `json:"year"`
	Entitlement  int             `json:"entitlement"`
	Used         int             `json:"used"`
	Remaining    int             `json:"remaining"`
	PendingDays  int             `json:"pending_days"`
	ApprovedDays int             `json:"approved_days"`
	RejectedDays int             `json:"rejected_days"`
	ByType       []TypeBreakdown `json:"by_type"`
}
