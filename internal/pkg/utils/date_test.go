package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_KeepsLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	// 2024-06-15 23:30 UTC is already 2024-06-16 in ICT
	ts := time.Date(2024, 6, 15, 23, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, NewDate(2024, 6, 16), DateOf(ts))
}

func TestInclusiveDays(t *testing.T) {
	cases := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"same day", NewDate(2024, 6, 3), NewDate(2024, 6, 3), 1},
		{"five days", NewDate(2024, 6, 3), NewDate(2024, 6, 7), 5},
		{"across month", NewDate(2024, 1, 30), NewDate(2024, 2, 2), 4},
		{"reversed", NewDate(2024, 6, 7), NewDate(2024, 6, 3), 0},
		{"leap day", NewDate(2024, 2, 28), NewDate(2024, 3, 1), 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, InclusiveDays(c.from, c.to))
		})
	}
}

func TestOverlaps(t *testing.T) {
	a1, a2 := NewDate(2024, 6, 10), NewDate(2024, 6, 12)
	assert.True(t, Overlaps(a1, a2, NewDate(2024, 6, 12), NewDate(2024, 6, 20)), "shared end day")
	assert.True(t, Overlaps(a1, a2, NewDate(2024, 6, 1), NewDate(2024, 6, 10)), "shared start day")
	assert.True(t, Overlaps(a1, a2, NewDate(2024, 6, 11), NewDate(2024, 6, 11)), "contained")
	assert.False(t, Overlaps(a1, a2, NewDate(2024, 6, 13), NewDate(2024, 6, 20)))
	assert.False(t, Overlaps(a1, a2, NewDate(2024, 6, 1), NewDate(2024, 6, 9)))
}

func TestClip(t *testing.T) {
	lo, hi := YearRange(2024)
	from, to, ok := Clip(NewDate(2023, 12, 30), NewDate(2024, 1, 2), lo, hi)
	require.True(t, ok)
	assert.Equal(t, NewDate(2024, 1, 1), from)
	assert.Equal(t, NewDate(2024, 1, 2), to)

	_, _, ok = Clip(NewDate(2023, 12, 1), NewDate(2023, 12, 5), lo, hi)
	assert.False(t, ok)
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, 2, 1), start)
	assert.Equal(t, NewDate(2024, 2, 29), end)

	_, _, err = MonthRange(2024, 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = MonthRange(1999, 5)
	assert.ErrorIs(t, err, ErrInvalidYear)
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(NewDate(2024, 6, 15)))  // Saturday
	assert.True(t, IsWeekend(NewDate(2024, 6, 16)))  // Sunday
	assert.False(t, IsWeekend(NewDate(2024, 6, 12))) // Wednesday
}
