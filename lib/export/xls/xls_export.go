package xlsexport

import (
	"bytes"
	analyticsapimodels "recruitment-backend/models/api/analytics"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportAnalytics(report analyticsapimodels.Report) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const sheetName = "Analytics"

var analyticsHeaders = []string{"Job", "Status", "Vacancies", "Applied", "Shortlisted", "Rejected", "Pending"}

func (i impl) ExportAnalytics(report analyticsapimodels.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, analyticsHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	row, err = writeAnalyticsData(f, sheet, report, row)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx data")
	}
	if _, err = writeTotals(f, sheet, report.Totals, row); err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx totals")
	}
	if err = f.SetSheetName(sheet, sheetName); err != nil {
		return nil, errors.Wrap(err, "failed to rename xlsx sheet")
	}
	return f.WriteToBuffer()
}

func writeAnalyticsData(f *excelize.File, sheet string, report analyticsapimodels.Report, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(analyticsHeaders), row+len(report.Jobs), false); err != nil {
		return row, err
	}
	for _, item := range report.Jobs {
		status := "Open"
		if !item.IsOpen {
			status = "Closed"
		}
		var err error
		row, err = writeRow(f, sheet, row, item.JobTitle, status, item.Vacancies,
			item.TotalApplied, item.Shortlisted, item.Rejected, item.Pending)
		if err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeTotals(f *excelize.File, sheet string, totals analyticsapimodels.Totals, row int) (int, error) {
	// empty separator row
	row++
	first := row + 1
	lines := [][]interface{}{
		{"Total jobs", totals.TotalJobs},
		{"Closed jobs", totals.ClosedJobs},
		{"Total applied", totals.TotalApplied},
		{"Shortlisted", totals.Shortlisted},
		{"Rejected", totals.Rejected},
		{"Pending", totals.Pending},
		{"Conversion rate, %", totals.ConversionRate},
	}
	var err error
	for _, line := range lines {
		if row, err = writeRow(f, sheet, row, line...); err != nil {
			return row, err
		}
	}
	return row, applyDataCellStyle(f, sheet, 1, first, 1, row, true)
}
