package apiv1

import (
	"fmt"
	"recruitment-backend/controllers"
	jobhandler "recruitment-backend/lib/job"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"
	jobapimodels "recruitment-backend/models/api/job"

	"github.com/gofiber/fiber/v2"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app fiber.Router) {
	controller := jobApiController{}
	authRequired := middleware.AuthorizationRequired()
	rbac := middleware.RbacMiddleware()
	app.Route("jobs", func(router fiber.Router) {
		router.Get("open", controller.listOpen)
		router.Post("", authRequired, rbac, controller.create)
		router.Get("my", authRequired, rbac, controller.listMy)
		router.Get("", authRequired, rbac, controller.listAll)
		router.Patch("close/:jobId", authRequired, rbac, controller.close)
	})
}

// @Summary Create job
// @Tags Jobs
// @Description Create a job posting. Approved HR only. requiredSkills accepts an array or a comma separated string.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		jobapimodels.JobData	true	"request body"
// @Success 201 {object} jobapimodels.JobCreateResponse
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /jobs [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := jobhandler.Instance.Create(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to create job")
	}
	return ctx.Status(fiber.StatusCreated).JSON(jobapimodels.JobCreateResponse{
		Message: "Job created successfully",
		JobID:   id,
	})
}

// @Summary My jobs
// @Tags Jobs
// @Description Jobs created by the current HR, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} jobapimodels.JobListResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /jobs/my [get]
func (c *jobApiController) listMy(ctx *fiber.Ctx) error {
	list, err := jobhandler.Instance.ListMy(ctx.UserContext(), middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list own jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.JobListResponse{
		Message: fmt.Sprintf("Jobs created by %s", middleware.GetUserName(ctx)),
		Jobs:    list,
	})
}

// @Summary All jobs
// @Tags Jobs
// @Description All jobs with their creators. Admin only.
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} jobapimodels.JobListResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /jobs [get]
func (c *jobApiController) listAll(ctx *fiber.Ctx) error {
	list, err := jobhandler.Instance.ListAll(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.JobListResponse{
		Message: "All job listings",
		Jobs:    list,
	})
}

// @Summary Open jobs
// @Tags Jobs
// @Description Public list of open jobs, newest first
// @Success 200 {object} jobapimodels.JobListResponse
// @Failure 500 {object} apimodels.Response
// @router /jobs/open [get]
func (c *jobApiController) listOpen(ctx *fiber.Ctx) error {
	list, err := jobhandler.Instance.ListOpen(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list open jobs")
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.JobListResponse{
		Message: "Open job listings",
		Jobs:    list,
	})
}

// @Summary Close job
// @Tags Jobs
// @Description Close a job manually and notify its applicants. Repeated calls succeed without notifications.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   jobId          		path    string  				    	true         "job ID"
// @Success 200 {object} jobapimodels.JobCloseResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /jobs/close/{jobId} [patch]
func (c *jobApiController) close(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx, "jobId")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	alreadyClosed, err := jobhandler.Instance.Close(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("job_id", jobID), err, "failed to close job")
	}
	msg := "Job closed successfully"
	if alreadyClosed {
		msg = "Job already closed"
	}
	return ctx.Status(fiber.StatusOK).JSON(jobapimodels.JobCloseResponse{Message: msg})
}
