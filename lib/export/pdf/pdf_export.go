package pdfexport

import (
	"bytes"
	"fmt"
	analyticsapimodels "recruitment-backend/models/api/analytics"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Job", 80, "L"},
	{"Status", 25, "C"},
	{"Vacancies", 25, "R"},
	{"Applied", 25, "R"},
	{"Shortlisted", 30, "R"},
	{"Rejected", 25, "R"},
	{"Pending", 25, "R"},
}

const lineHt = 8.0

// ExportAnalytics renders the analytics report as a landscape A4 table.
func ExportAnalytics(appName string, report analyticsapimodels.Report) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportAnalytics panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	// core fonts are cp1252, non latin runes are replaced
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(appName+" analytics", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(appName+": hiring analytics"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated at "+report.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeTableHeader(pdf)
	pdf.SetFont("Helvetica", "", 10)
	for idx, item := range report.Jobs {
		fill := idx%2 == 1
		status := "Open"
		if !item.IsOpen {
			status = "Closed"
		}
		values := []string{
			tr(truncate(item.JobTitle, 45)),
			status,
			fmt.Sprint(item.Vacancies),
			fmt.Sprint(item.TotalApplied),
			fmt.Sprint(item.Shortlisted),
			fmt.Sprint(item.Rejected),
			fmt.Sprint(item.Pending),
		}
		for colIdx, col := range columns {
			pdf.CellFormat(col.width, lineHt, values[colIdx], "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(report.Jobs) == 0 {
		pdf.CellFormat(tableWidth(), lineHt, "No jobs yet", "1", 1, "C", false, 0, "")
	}

	pdf.Ln(6)
	writeTotals(pdf, report.Totals)

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, errors.Wrap(err, "failed to render pdf")
	}
	return buf.Bytes(), nil
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(224, 231, 255)
	for _, col := range columns {
		pdf.CellFormat(col.width, lineHt, col.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFillColor(245, 245, 245)
}

func writeTotals(pdf *fpdf.Fpdf, totals analyticsapimodels.Totals) {
	lines := [][2]string{
		{"Total jobs", fmt.Sprint(totals.TotalJobs)},
		{"Closed jobs", fmt.Sprint(totals.ClosedJobs)},
		{"Total applied", fmt.Sprint(totals.TotalApplied)},
		{"Shortlisted", fmt.Sprint(totals.Shortlisted)},
		{"Rejected", fmt.Sprint(totals.Rejected)},
		{"Pending", fmt.Sprint(totals.Pending)},
		{"Conversion rate", fmt.Sprintf("%d%%", totals.ConversionRate)},
	}
	for _, line := range lines {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 7, line[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(30, 7, line[1], "", 1, "L", false, 0, "")
	}
}

func tableWidth() float64 {
	var w float64
	for _, col := range columns {
		w += col.width
	}
	return w
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
