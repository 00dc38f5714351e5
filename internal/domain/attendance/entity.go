package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusError     Status = "error"
)

func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusError
}

// Action is the next step an employee should take today.
type Action string

const (
	ActionCheckIn  Action = "CHECK_IN"
	ActionCheckOut Action = "CHECK_OUT"
	ActionNone     Action = "NONE"
)

// Record is one employee's attendance for one work date.
type Record struct {
	ID                string
	EmployeeID        string
	WorkDate          time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	RequiredWorkHours decimal.Decimal
	WorkHours         decimal.Decimal
	OvertimeHours     decimal.Decimal
	ExpectedCheckIn   *string
	ExpectedCheckOut  *string
	Reason            *string
	AdminNote         *string
	HolidayName       *string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports a check-in without a matching check-out.
func (r Record) IsOpen() bool {
	return r.CheckIn != nil && r.CheckOut == nil
}

func (r Record) IsCompleted() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}

// DaySchedule is the fixed working day stamped on each record.
type DaySchedule struct {
	RequiredHours    decimal.Decimal
	ExpectedCheckIn  string
	ExpectedCheckOut string
}

func DefaultSchedule() DaySchedule {
	return DaySchedule{
		RequiredHours:    decimal.NewFromInt(8),
		ExpectedCheckIn:  "08:00",
		ExpectedCheckOut: "17:00",
	}
}

// Stamp fills the expected-time fields that are still empty.
func (s DaySchedule) Stamp(r *Record) {
	if r.ExpectedCheckIn == nil {
		in := s.ExpectedCheckIn
		r.ExpectedCheckIn = &in
	}
	if r.ExpectedCheckOut == nil {
		out := s.ExpectedCheckOut
		r.ExpectedCheckOut = &out
	}
	if r.RequiredWorkHours.IsZero() {
		r.RequiredWorkHours = s.RequiredHours
	}
}
