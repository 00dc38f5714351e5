package utils

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidYear      = errors.New("year must be between 2000 and 2100")
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
)

// DateOf drops the clock part of t, keeping the calendar day as seen in t's location.
// The result is midnight UTC so civil dates compare and subtract cleanly.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// InclusiveDays counts calendar days in [from, to], both ends included.
// Returns 0 when to precedes from.
func InclusiveDays(from, to time.Time) int {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// Overlaps reports whether the inclusive ranges [aFrom, aTo] and [bFrom, bTo] share a day.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !(DateOf(aTo).Before(DateOf(bFrom)) || DateOf(aFrom).After(DateOf(bTo)))
}

// Clip narrows [from, to] to [lo, hi]. ok is false when nothing is left.
func Clip(from, to, lo, hi time.Time) (time.Time, time.Time, bool) {
	if from.Before(lo) {
		from = lo
	}
	if to.After(hi) {
		to = hi
	}
	return from, to, !to.Before(from)
}

func ValidateMonthYear(month, year int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	if year < 2000 || year > 2100 {
		return ErrInvalidYear
	}
	return nil
}

// MonthRange returns the first and last day of the month.
func MonthRange(year, month int) (time.Time, time.Time, error) {
	if err := ValidateMonthYear(month, year); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := NewDate(year, time.Month(month), 1)
	return start, start.AddDate(0, 1, -1), nil
}

// YearRange returns Jan 1 and Dec 31 of year.
func YearRange(year int) (time.Time, time.Time) {
	return NewDate(year, time.January, 1), NewDate(year, time.December, 31)
}
