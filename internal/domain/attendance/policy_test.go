package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) *time.Time {
	t := time.Date(2024, 6, 12, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestElapsedHours(t *testing.T) {
	cases := []struct {
		name    string
		in, out *time.Time
		want    string
	}{
		{"full day", at(8, 0), at(17, 0), "9.00"},
		{"third of an hour", at(8, 0), at(8, 20), "0.33"},
		{"rounds half up", at(8, 0), at(8, 1), "0.02"},
		{"zero", at(8, 0), at(8, 0), "0.00"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ElapsedHours(*c.in, *c.out).StringFixed(2))
		})
	}
}

func TestSplitHours(t *testing.T) {
	eight := decimal.NewFromInt(8)

	work, overtime := SplitHours(decimal.NewFromInt(11), eight, false)
	assert.Equal(t, "8.00", work.StringFixed(2))
	assert.Equal(t, "3.00", overtime.StringFixed(2))

	work, overtime = SplitHours(decimal.RequireFromString("6.5"), eight, false)
	assert.Equal(t, "6.50", work.StringFixed(2))
	assert.True(t, overtime.IsZero())

	work, overtime = SplitHours(decimal.RequireFromString("5.5"), eight, true)
	assert.True(t, work.IsZero())
	assert.Equal(t, "5.50", overtime.StringFixed(2))
}

func TestDayPolicy(t *testing.T) {
	weekday := NewDayPolicy(utils.NewDate(2024, 6, 12), "", false)
	assert.False(t, weekday.AllOvertime())
	assert.Nil(t, weekday.DefaultReason())
	assert.Nil(t, weekday.HolidayNamePtr())

	saturday := NewDayPolicy(utils.NewDate(2024, 6, 15), "", false)
	assert.True(t, saturday.AllOvertime())
	assert.Equal(t, ReasonWeekendOvertime, *saturday.DefaultReason())

	holiday := NewDayPolicy(utils.NewDate(2024, 12, 25), "Christmas Day", true)
	assert.True(t, holiday.AllOvertime())
	assert.Equal(t, ReasonHolidayOvertime, *holiday.DefaultReason())
	assert.Equal(t, "Christmas Day", *holiday.HolidayNamePtr())
}

func TestRecord_Recalculate(t *testing.T) {
	weekday := NewDayPolicy(utils.NewDate(2024, 6, 12), "", false)
	eight := decimal.NewFromInt(8)

	t.Run("open record untouched", func(t *testing.T) {
		r := Record{CheckIn: at(8, 0)}
		require.NoError(t, r.Recalculate(weekday, eight))
		assert.True(t, r.WorkHours.IsZero())
	})

	t.Run("uses stored required hours", func(t *testing.T) {
		r := Record{CheckIn: at(8, 0), CheckOut: at(16, 0), RequiredWorkHours: decimal.NewFromInt(7)}
		require.NoError(t, r.Recalculate(weekday, eight))
		assert.Equal(t, "7.00", r.WorkHours.StringFixed(2))
		assert.Equal(t, "1.00", r.OvertimeHours.StringFixed(2))
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		r := Record{CheckIn: at(9, 0), CheckOut: at(8, 0)}
		assert.ErrorIs(t, r.Recalculate(weekday, eight), ErrCheckOutBeforeCheckIn)
	})

	t.Run("holiday name stamped", func(t *testing.T) {
		holiday := NewDayPolicy(utils.NewDate(2024, 6, 12), "Eid al-Adha", true)
		r := Record{CheckIn: at(8, 0), CheckOut: at(10, 0)}
		require.NoError(t, r.Recalculate(holiday, eight))
		assert.Equal(t, "Eid al-Adha", *r.HolidayName)
		assert.Equal(t, "2.00", r.OvertimeHours.StringFixed(2))
	})
}

func TestHistoryFilter_Range(t *testing.T) {
	today := utils.NewDate(2024, 6, 12)

	var f HistoryFilter
	require.NoError(t, f.Validate())
	start, end := f.Range(today)
	assert.Equal(t, utils.NewDate(2024, 5, 12), start)
	assert.Equal(t, today, end)

	month, year := 2, 2024
	f = HistoryFilter{Month: &month, Year: &year}
	require.NoError(t, f.Validate())
	start, end = f.Range(today)
	assert.Equal(t, utils.NewDate(2024, 2, 1), start)
	assert.Equal(t, utils.NewDate(2024, 2, 29), end)
}
