package apiv1

import (
	"fmt"
	"io"
	"recruitment-backend/controllers"
	"recruitment-backend/lib/analytics"
	applicationhandler "recruitment-backend/lib/application"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"
	analyticsapimodels "recruitment-backend/models/api/analytics"
	applicationapimodels "recruitment-backend/models/api/application"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Post("apply/:jobId", controller.apply)
		router.Get("my", controller.listMy)
		router.Get("job/all", controller.listForHr)
		router.Get("job/:jobId", controller.listForJob)
		router.Patch("status/:id", controller.changeStatus)
		router.Get("analytics", controller.analytics)
		router.Get("analytics/export", controller.analyticsExport)
	})
}

// @Summary Apply for a job
// @Tags Applications
// @Description Apply for an open job with a resume (PDF, DOC or DOCX up to 5MB). Candidates only.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Param   resume		formData	file 	true 	"resume file"
// @Success 201 {object} applicationapimodels.ApplyResponse
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/apply/{jobId} [post]
func (c *applicationApiController) apply(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx, "jobId")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	upload := applicationhandler.ResumeUpload{}
	// a missing file part is reported by the handler after the role check
	if fileHeader, err := ctx.FormFile("resume"); err == nil {
		upload = applicationhandler.ResumeUpload{
			FileName: fileHeader.Filename,
			Size:     fileHeader.Size,
			Open: func() (io.ReadCloser, error) {
				return fileHeader.Open()
			},
		}
	}
	id, err := applicationhandler.Instance.Apply(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), jobID, upload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("job_id", jobID), err, "failed to apply for job")
	}
	return ctx.Status(fiber.StatusCreated).JSON(applicationapimodels.ApplyResponse{
		Message:       "Applied successfully",
		ApplicationID: id,
	})
}

// @Summary My applications
// @Tags Applications
// @Description Applications of the current candidate with a job summary, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} applicationapimodels.ApplicationListResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/my [get]
func (c *applicationApiController) listMy(ctx *fiber.Ctx) error {
	list, err := applicationhandler.Instance.ListMy(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list own applications")
	}
	return ctx.Status(fiber.StatusOK).JSON(applicationapimodels.ApplicationListResponse{
		Message:      "My applications",
		Applications: list,
	})
}

// @Summary Applications of all own jobs
// @Tags Applications
// @Description Applications across every job of the current HR, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} applicationapimodels.ApplicationListResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/job/all [get]
func (c *applicationApiController) listForHr(ctx *fiber.Ctx) error {
	list, err := applicationhandler.Instance.ListForHR(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list applications of own jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(applicationapimodels.ApplicationListResponse{
		Message:      "Applications for your jobs",
		Applications: list,
	})
}

// @Summary Applications of a job
// @Tags Applications
// @Description Applications of a job owned by the current HR, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Success 200 {object} applicationapimodels.ApplicationListResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/job/{jobId} [get]
func (c *applicationApiController) listForJob(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx, "jobId")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	list, err := applicationhandler.Instance.ListForJob(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("job_id", jobID), err, "failed to list applications of job")
	}
	return ctx.Status(fiber.StatusOK).JSON(applicationapimodels.ApplicationListResponse{
		Message:      "Applications for job",
		Applications: list,
	})
}

// @Summary Change application status
// @Tags Applications
// @Description Set the status of an application of an own job. The job closes once shortlisted applications reach its vacancies.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "application ID"
// @Param	body				body		applicationapimodels.StatusChangeRequest	true	"request body"
// @Success 200 {object} applicationapimodels.StatusChangeResponse
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/status/{id} [patch]
func (c *applicationApiController) changeStatus(ctx *fiber.Ctx) error {
	applicationID, err := c.GetID(ctx, "id")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	var payload applicationapimodels.StatusChangeRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	payload.Normalize()
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.UpdateStatus(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), applicationID, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", applicationID), err, "failed to change application status")
	}
	return ctx.Status(fiber.StatusOK).JSON(applicationapimodels.StatusChangeResponse{
		Message: "Application status updated successfully",
	})
}

// @Summary Hiring analytics
// @Tags Applications
// @Description Application counters per own job with totals and conversion rate
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} analyticsapimodels.ReportResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/analytics [get]
func (c *applicationApiController) analytics(ctx *fiber.Ctx) error {
	report, err := analytics.Instance.Report(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to build analytics report")
	}
	return ctx.Status(fiber.StatusOK).JSON(analyticsapimodels.ReportResponse{
		Message: "Hiring analytics",
		Report:  report,
	})
}

// @Summary Export hiring analytics
// @Tags Applications
// @Description Analytics report as an Excel workbook or a PDF document
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   format          		query    string  				    	false         "xlsx (default) or pdf"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /applications/analytics/export [get]
func (c *applicationApiController) analyticsExport(ctx *fiber.Ctx) error {
	format := analyticsapimodels.ExportFormat(strings.ToLower(ctx.Query("format", string(analyticsapimodels.ExportFormatXlsx))))
	data, err := analytics.Instance.Export(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), format)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export analytics")
	}
	fileName := fmt.Sprintf("analytics-%v.%s", time.Now().Format("20060102-150405"), format)
	ctx.Set(fiber.HeaderContentType, format.ContentType())
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.Status(fiber.StatusOK).Send(data)
}
