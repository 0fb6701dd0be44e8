package analytics

import (
	"context"
	"math"
	"recruitment-backend/config"
	"recruitment-backend/db"
	applicationstore "recruitment-backend/lib/application/store"
	pdfexport "recruitment-backend/lib/export/pdf"
	xlsexport "recruitment-backend/lib/export/xls"
	apperrors "recruitment-backend/lib/utils/app-errors"
	initchecker "recruitment-backend/lib/utils/init-checker"
	"recruitment-backend/models"
	analyticsapimodels "recruitment-backend/models/api/analytics"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Report(ctx context.Context, userID string, role models.UserRole) (analyticsapimodels.Report, error)
	Export(ctx context.Context, userID string, role models.UserRole, format analyticsapimodels.ExportFormat) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"xlsExporter", xlsexport.Instance,
	)
	Instance = NewInstance(
		applicationstore.NewInstance(db.DB),
		xlsexport.Instance,
		config.Conf.App.Name,
	)
}

func NewInstance(applicationStore applicationstore.Provider, xls xlsexport.Provider, appName string) Provider {
	return impl{
		applicationStore: applicationStore,
		xls:              xls,
		appName:          appName,
		now:              time.Now,
	}
}

type impl struct {
	applicationStore applicationstore.Provider
	xls              xlsexport.Provider
	appName          string
	now              func() time.Time
}

func (i impl) Report(ctx context.Context, userID string, role models.UserRole) (analyticsapimodels.Report, error) {
	if role != models.UserRoleHR {
		return analyticsapimodels.Report{}, apperrors.Forbidden("HR access only")
	}
	stats, err := i.applicationStore.StatsByJobCreator(userID)
	if err != nil {
		return analyticsapimodels.Report{}, errors.Wrap(err, "failed to get job statistics")
	}
	report := analyticsapimodels.Report{
		GeneratedAt: i.now(),
		Jobs:        make([]analyticsapimodels.JobReport, 0, len(stats)),
	}
	for _, stat := range stats {
		item := analyticsapimodels.ConvertStat(stat)
		report.Jobs = append(report.Jobs, item)
		report.Totals.TotalJobs++
		if !item.IsOpen {
			report.Totals.ClosedJobs++
		}
		report.Totals.TotalApplied += item.TotalApplied
		report.Totals.Shortlisted += item.Shortlisted
		report.Totals.Rejected += item.Rejected
		report.Totals.Pending += item.Pending
	}
	report.Totals.ConversionRate = conversionRate(report.Totals.Shortlisted, report.Totals.TotalApplied)
	return report, nil
}

func (i impl) Export(ctx context.Context, userID string, role models.UserRole, format analyticsapimodels.ExportFormat) ([]byte, error) {
	logger := log.WithFields(log.Fields{
		"user_id": userID,
		"format":  format,
	})
	if format != analyticsapimodels.ExportFormatXlsx && format != analyticsapimodels.ExportFormatPdf {
		return nil, apperrors.Validation("Unsupported export format, use xlsx or pdf")
	}
	report, err := i.Report(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	var data []byte
	switch format {
	case analyticsapimodels.ExportFormatXlsx:
		buf, err := i.xls.ExportAnalytics(report)
		if err != nil {
			return nil, errors.Wrap(err, "failed to export analytics to xlsx")
		}
		data = buf.Bytes()
	case analyticsapimodels.ExportFormatPdf:
		data, err = pdfexport.ExportAnalytics(i.appName, report)
		if err != nil {
			return nil, errors.Wrap(err, "failed to export analytics to pdf")
		}
	}
	logger.WithField("jobs", len(report.Jobs)).Info("analytics exported")
	return data, nil
}

// conversionRate is the rounded percent of applications that were shortlisted.
func conversionRate(shortlisted, total int64) int64 {
	if total == 0 {
		return 0
	}
	return int64(math.Round(float64(shortlisted) * 100 / float64(total)))
}
