package export

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const attendanceSheet = "Attendance"

var attendanceHeaders = []string{
	"Work Date", "Employee ID", "Employee", "Check In", "Check Out",
	"Required Hours", "Work Hours", "Overtime Hours", "Holiday", "Reason", "Admin Note", "Status",
}

// AttendanceWorkbook renders records as a single-sheet XLSX file.
func AttendanceWorkbook(records []attendance.AttendanceResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range attendanceHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(attendanceSheet, cell, h); err != nil {
			return nil, err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(attendanceHeaders), 1)
	if err := f.SetCellStyle(attendanceSheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.WorkDate,
			r.EmployeeID,
			deref(r.EmployeeName),
			deref(r.CheckIn),
			deref(r.CheckOut),
			r.RequiredWorkHours,
			r.WorkHours,
			r.OvertimeHours,
			deref(r.HolidayName),
			deref(r.Reason),
			deref(r.AdminNote),
			string(r.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(attendanceSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
	}

	_ = f.SetColWidth(attendanceSheet, "A", "E", 22)
	_ = f.SetColWidth(attendanceSheet, "J", "K", 40)
	_ = f.SetPanes(attendanceSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
