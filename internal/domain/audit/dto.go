package audit

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/validator"
)

type AuditFilter struct {
	RecordType *string `json:"record_type,omitempty"`
	RecordID   *string `json:"record_id,omitempty"`
	ActorID    *string `json:"actor_id,omitempty"`
	Action     *string `json:"action,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AuditFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be between 1 and 100"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	if f.RecordType != nil {
		valid := []string{string(RecordTypeAttendance), string(RecordTypeLeave)}
		if !validator.IsInSlice(*f.RecordType, valid) {
			errs = append(errs, validator.ValidationError{
				Field:   "record_type",
				Message: "record_type must be one of: attendance, leave_request",
			})
		}
	}

	if f.RecordID != nil && !validator.IsValidUUID(*f.RecordID) {
		errs = append(errs, validator.ValidationError{Field: "record_id", Message: "record_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID         string  `json:"id"`
	RecordType string  `json:"record_type"`
	RecordID   string  `json:"record_id"`
	ActorID    string  `json:"actor_id"`
	Action     string  `json:"action"`
	Note       *string `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

type ListEntryResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Entries    []EntryResponse `json:"entries"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		RecordType: string(e.RecordType),
		RecordID:   e.RecordID,
		ActorID:    e.ActorID,
		Action:     string(e.Action),
		Note:       e.Note,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
}
