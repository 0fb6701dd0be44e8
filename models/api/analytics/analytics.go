package analyticsapimodels

import (
	dbmodels "recruitment-backend/models/db"
	"time"
)

type JobReport struct {
	JobID        string `json:"jobId"`
	JobTitle     string `json:"jobTitle"`
	IsOpen       bool   `json:"isOpen"`
	Vacancies    int    `json:"vacancies"`
	TotalApplied int64  `json:"totalApplied"`
	Shortlisted  int64  `json:"shortlisted"`
	Rejected     int64  `json:"rejected"`
	Pending      int64  `json:"pending"`
}

func ConvertStat(rec dbmodels.JobStat) JobReport {
	return JobReport{
		JobID:        rec.JobID,
		JobTitle:     rec.JobTitle,
		IsOpen:       rec.IsOpen,
		Vacancies:    rec.Vacancies,
		TotalApplied: rec.TotalApplied,
		Shortlisted:  rec.Shortlisted,
		Rejected:     rec.Rejected,
		Pending:      rec.Pending,
	}
}

type Totals struct {
	TotalJobs      int   `json:"totalJobs"`
	ClosedJobs     int   `json:"closedJobs"`
	TotalApplied   int64 `json:"totalApplied"`
	Shortlisted    int64 `json:"shortlisted"`
	Rejected       int64 `json:"rejected"`
	Pending        int64 `json:"pending"`
	ConversionRate int64 `json:"conversionRate"` // percent of applicants shortlisted
}

type Report struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Jobs        []JobReport `json:"jobs"`
	Totals      Totals      `json:"totals"`
}

type ReportResponse struct {
	Message string `json:"message"`
	Report
}

type ExportFormat string

const (
	ExportFormatXlsx ExportFormat = "xlsx"
	ExportFormatPdf  ExportFormat = "pdf"
)

func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatXlsx:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportFormatPdf:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
