package audit

import "time"

type RecordType string

const (
	RecordTypeAttendance RecordType = "attendance"
	RecordTypeLeave      RecordType = "leave_request"
)

type Action string

const (
	ActionCheckIn      Action = "check_in"
	ActionCheckOut     Action = "check_out"
	ActionReasonUpdate Action = "reason_updated"
	ActionAdminUpdate  Action = "admin_updated"
	ActionApprove      Action = "approved"
	ActionReject       Action = "rejected"
	ActionCorrect      Action = "corrected"
	ActionMarkError    Action = "marked_error"
	ActionAbsence      Action = "absence_recorded"
	ActionSubmit       Action = "submitted"
	ActionUpdate       Action = "updated"
	ActionDelete       Action = "deleted"
)

// SystemActor identifies writes made by background jobs.
const SystemActor = "system"

// Entry is one append-only line of history for an attendance record or leave request.
type Entry struct {
	ID         string
	RecordType RecordType
	RecordID   string
	ActorID    string
	Action     Action
	Note       *string
	CreatedAt  time.Time
}
