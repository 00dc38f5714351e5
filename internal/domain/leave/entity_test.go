package leave

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) *time.Time {
	t := utils.NewDate(y, m, d)
	return &t
}

func TestEntitledDays(t *testing.T) {
	cases := []struct {
		name string
		hire *time.Time
		year int
		want int
	}{
		{"unknown hire date", nil, 2024, 12},
		{"hired in an earlier year", date(2020, 3, 1), 2024, 12},
		{"hired in January", date(2024, 1, 1), 2024, 12},
		{"hired in July", date(2024, 7, 15), 2024, 6},
		{"hired in December", date(2024, 12, 31), 2024, 1},
		{"hired after the year", date(2025, 1, 2), 2024, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, EntitledDays(c.hire, c.year))
		})
	}
}

func TestUsedDays(t *testing.T) {
	approved := []LeaveRequest{
		{FromDate: utils.NewDate(2023, 12, 29), ToDate: utils.NewDate(2024, 1, 2), Status: RequestStatusApproved},
		{FromDate: utils.NewDate(2024, 3, 4), ToDate: utils.NewDate(2024, 3, 8), Status: RequestStatusApproved},
		{FromDate: utils.NewDate(2024, 4, 1), ToDate: utils.NewDate(2024, 4, 1), Status: RequestStatusPending},
	}

	assert.Equal(t, 7, UsedDays(approved, nil, 2024))
	// only days on or after the hire date count
	assert.Equal(t, 3, UsedDays(approved, date(2024, 3, 6), 2024))
	assert.Equal(t, 3, UsedDays(approved, nil, 2023))
}

func TestNewEntitlement_NeverNegative(t *testing.T) {
	approved := []LeaveRequest{
		{FromDate: utils.NewDate(2024, 8, 1), ToDate: utils.NewDate(2024, 8, 20), Status: RequestStatusApproved},
	}
	e := NewEntitlement(date(2024, 7, 1), 2024, approved)
	assert.Equal(t, 6, e.Entitled)
	assert.Equal(t, 20, e.Used)
	assert.Equal(t, 0, e.Remaining)
}
