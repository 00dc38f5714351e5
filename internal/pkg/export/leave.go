package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/jung-kurt/gofpdf"
)

// LeaveSummaryPDF renders a one-page yearly leave summary for an employee.
func LeaveSummaryPDF(summary leave.LeaveSummaryResponse, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Leave summary %d", summary.Year), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Leave Summary %d", summary.Year))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s", summary.EmployeeName))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Annual leave")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []struct {
		label string
		value int
	}{
		{"Entitlement", summary.Entitlement},
		{"Used", summary.Used},
		{"Remaining", summary.Remaining},
	} {
		pdf.CellFormat(50, 7, line.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d days", line.value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "By leave type")
	pdf.Ln(8)

	widths := []float64{60, 30, 25, 25, 25, 25}
	headers := []string{"Type", "Category", "Total", "Approved", "Pending", "Rejected"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, b := range summary.ByType {
		cells := []string{
			b.LeaveTypeName,
			string(b.Category),
			fmt.Sprint(b.TotalDays),
			fmt.Sprint(b.ApprovedDays),
			fmt.Sprint(b.PendingDays),
			fmt.Sprint(b.RejectedDays),
		}
		for i, c := range cells {
			align := "R"
			if i < 2 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	totals := []string{"Total", "", fmt.Sprint(summary.ApprovedDays + summary.PendingDays + summary.RejectedDays),
		fmt.Sprint(summary.ApprovedDays), fmt.Sprint(summary.PendingDays), fmt.Sprint(summary.RejectedDays)}
	for i, c := range totals {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
