package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceWorkbook(t *testing.T) {
	in := "2024-06-12T08:00:00+07:00"
	name := "Nguyen Van A"
	records := []attendance.AttendanceResponse{
		{
			WorkDate:          "2024-06-12",
			EmployeeID:        "0190a0c0-0000-7000-8000-0000000000aa",
			EmployeeName:      &name,
			CheckIn:           &in,
			RequiredWorkHours: "8.00",
			WorkHours:         "8.00",
			OvertimeHours:     "3.00",
			Status:            attendance.StatusPending,
		},
	}

	data, err := AttendanceWorkbook(records)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, attendanceHeaders[0], rows[0][0])
	assert.Equal(t, "2024-06-12", rows[1][0])
	assert.Equal(t, name, rows[1][2])
	assert.Equal(t, "3.00", rows[1][7])
	assert.Equal(t, "pending", rows[1][11])
}

func TestLeaveSummaryPDF(t *testing.T) {
	summary := leave.LeaveSummaryResponse{
		EmployeeName: "Tran Thi B",
		Year:         2024,
		Entitlement:  12,
		Used:         5,
		Remaining:    7,
		ApprovedDays: 5,
		ByType: []leave.TypeBreakdown{
			{LeaveTypeName: "Annual leave", Category: leave.CategoryAnnual, TotalDays: 5, ApprovedDays: 5},
		},
	}

	data, err := LeaveSummaryPDF(summary, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}
