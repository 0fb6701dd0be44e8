package analytics

import (
	"bytes"
	"context"
	xlsexport "recruitment-backend/lib/export/xls"
	apperrors "recruitment-backend/lib/utils/app-errors"
	"recruitment-backend/internal/testutil/memstore"
	"recruitment-backend/models"
	analyticsapimodels "recruitment-backend/models/api/analytics"
	dbmodels "recruitment-backend/models/db"
	"testing"

	"github.com/stretchr/testify/require"
)

func addApplication(t *testing.T, mem *memstore.DB, jobID, candidateID string, status models.ApplicationStatus) {
	_, err := mem.Applications().Create(dbmodels.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      status,
	})
	require.NoError(t, err)
}

func newHandler(mem *memstore.DB) Provider {
	xlsexport.NewHandler()
	return NewInstance(mem.Applications(), xlsexport.Instance, "Recruitment")
}

func TestReport(t *testing.T) {
	mem := memstore.New()
	hr := mem.AddUser("hr", "hr@example.com", models.UserRoleHR, true)
	other := mem.AddUser("hr2", "hr2@example.com", models.UserRoleHR, true)
	c1 := mem.AddUser("c1", "c1@example.com", models.UserRoleCandidate, true)
	c2 := mem.AddUser("c2", "c2@example.com", models.UserRoleCandidate, true)
	c3 := mem.AddUser("c3", "c3@example.com", models.UserRoleCandidate, true)

	job := mem.AddJob(hr.ID, "Go Developer", 2)
	mem.AddJob(hr.ID, "QA", 1)
	foreign := mem.AddJob(other.ID, "Designer", 1)

	addApplication(t, mem, job.ID, c1.ID, models.ApplicationStatusShortlisted)
	addApplication(t, mem, job.ID, c2.ID, models.ApplicationStatusRejected)
	addApplication(t, mem, job.ID, c3.ID, models.ApplicationStatusApplied)
	addApplication(t, mem, foreign.ID, c1.ID, models.ApplicationStatusShortlisted)

	report, err := newHandler(mem).Report(context.Background(), hr.ID, models.UserRoleHR)
	require.NoError(t, err)
	require.Len(t, report.Jobs, 2)
	require.Equal(t, analyticsapimodels.Totals{
		TotalJobs:      2,
		ClosedJobs:     0,
		TotalApplied:   3,
		Shortlisted:    1,
		Rejected:       1,
		Pending:        1,
		ConversionRate: 33,
	}, report.Totals)
	require.False(t, report.GeneratedAt.IsZero())
}

func TestReportWithoutApplications(t *testing.T) {
	mem := memstore.New()
	hr := mem.AddUser("hr", "hr@example.com", models.UserRoleHR, true)

	report, err := newHandler(mem).Report(context.Background(), hr.ID, models.UserRoleHR)
	require.NoError(t, err)
	require.Empty(t, report.Jobs)
	require.Zero(t, report.Totals.ConversionRate)
}

func TestReportForbidden(t *testing.T) {
	mem := memstore.New()
	candidate := mem.AddUser("c1", "c1@example.com", models.UserRoleCandidate, true)

	_, err := newHandler(mem).Report(context.Background(), candidate.ID, models.UserRoleCandidate)
	require.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestExport(t *testing.T) {
	mem := memstore.New()
	hr := mem.AddUser("hr", "hr@example.com", models.UserRoleHR, true)
	mem.AddJob(hr.ID, "Go Developer", 1)
	handler := newHandler(mem)

	t.Run("xlsx", func(t *testing.T) {
		data, err := handler.Export(context.Background(), hr.ID, models.UserRoleHR, analyticsapimodels.ExportFormatXlsx)
		require.NoError(t, err)
		// xlsx is a zip container
		require.True(t, bytes.HasPrefix(data, []byte("PK")))
	})
	t.Run("pdf", func(t *testing.T) {
		data, err := handler.Export(context.Background(), hr.ID, models.UserRoleHR, analyticsapimodels.ExportFormatPdf)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	})
	t.Run("unknown format", func(t *testing.T) {
		_, err := handler.Export(context.Background(), hr.ID, models.UserRoleHR, "csv")
		require.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestConversionRate(t *testing.T) {
	require.Equal(t, int64(0), conversionRate(0, 0))
	require.Equal(t, int64(67), conversionRate(2, 3))
	require.Equal(t, int64(100), conversionRate(4, 4))
}
