package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	ReasonHolidayOvertime = "Overtime on holiday"
	ReasonWeekendOvertime = "Overtime on weekend"
	NoteNoAttendance      = "No attendance recorded"
)

var minutesPerHour = decimal.NewFromInt(60)

// DayPolicy says how hours worked on a given date are classified.
type DayPolicy struct {
	Date        time.Time
	HolidayName string
	IsHoliday   bool
	IsWeekend   bool
}

func NewDayPolicy(date time.Time, holidayName string, isHoliday bool) DayPolicy {
	return DayPolicy{
		Date:        date,
		HolidayName: holidayName,
		IsHoliday:   isHoliday,
		IsWeekend:   utils.IsWeekend(date),
	}
}

// AllOvertime is true on holidays and weekends: every hour worked is overtime.
func (p DayPolicy) AllOvertime() bool {
	return p.IsHoliday || p.IsWeekend
}

// DefaultReason is the reason synthesized when an employee works a non-working day without giving one.
func (p DayPolicy) DefaultReason() *string {
	var reason string
	switch {
	case p.IsHoliday:
		reason = ReasonHolidayOvertime
	case p.IsWeekend:
		reason = ReasonWeekendOvertime
	default:
		return nil
	}
	return &reason
}

func (p DayPolicy) HolidayNamePtr() *string {
	if !p.IsHoliday {
		return nil
	}
	name := p.HolidayName
	return &name
}

// ElapsedHours converts whole minutes between checkIn and checkOut to hours,
// rounded half-up to 2 decimals.
func ElapsedHours(checkIn, checkOut time.Time) decimal.Decimal {
	minutes := int64(checkOut.Sub(checkIn) / time.Minute)
	return decimal.NewFromInt(minutes).DivRound(minutesPerHour, 2)
}

// SplitHours allocates elapsed hours between regular work and overtime.
// work + overtime always equals elapsed.
func SplitHours(elapsed, required decimal.Decimal, allOvertime bool) (work, overtime decimal.Decimal) {
	if allOvertime {
		return decimal.Zero, elapsed
	}
	if elapsed.GreaterThan(required) {
		return required, elapsed.Sub(required)
	}
	return elapsed, decimal.Zero
}

// Recalculate recomputes work and overtime hours from the stored times.
// Records without both times are left untouched.
func (r *Record) Recalculate(p DayPolicy, fallbackRequired decimal.Decimal) error {
	if r.CheckIn == nil || r.CheckOut == nil {
		return nil
	}
	if r.CheckOut.Before(*r.CheckIn) {
		return ErrCheckOutBeforeCheckIn
	}

	required := r.RequiredWorkHours
	if required.IsZero() {
		required = fallbackRequired
	}

	elapsed := ElapsedHours(*r.CheckIn, *r.CheckOut)
	r.WorkHours, r.OvertimeHours = SplitHours(elapsed, required, p.AllOvertime())
	if p.IsHoliday {
		r.HolidayName = p.HolidayNamePtr()
	}
	return nil
}
