package apiv1

import (
	"fmt"
	"recruitment-backend/controllers"
	applicationhandler "recruitment-backend/lib/application"
	"recruitment-backend/middleware"
	applicationapimodels "recruitment-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
)

type resumeApiController struct {
	controllers.BaseAPIController
}

func InitResumeApiRouters(app fiber.Router) {
	controller := resumeApiController{}
	app.Route("resume", func(router fiber.Router) {
		// token may come in the query, links are opened by the browser directly
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.RbacMiddleware())
		router.Get("view/:applicationId", controller.view)
		router.Get("download/:applicationId", controller.download)
	})
}

// @Summary View resume
// @Tags Resume
// @Description Stream the resume of an application inline. Owner candidate or owning HR.
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   token		query		string	false	"Authorization token"
// @Param   applicationId          		path    string  				    	true         "application ID"
// @Success 200
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /resume/view/{applicationId} [get]
func (c *resumeApiController) view(ctx *fiber.Ctx) error {
	return c.stream(ctx, "inline")
}

// @Summary Download resume
// @Tags Resume
// @Description Stream the resume of an application as an attachment. Owner candidate or owning HR.
// @Param   Authorization		header		string	false	"Authorization token"
// @Param   token		query		string	false	"Authorization token"
// @Param   applicationId          		path    string  				    	true         "application ID"
// @Success 200
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /resume/download/{applicationId} [get]
func (c *resumeApiController) download(ctx *fiber.Ctx) error {
	return c.stream(ctx, "attachment")
}

func (c *resumeApiController) stream(ctx *fiber.Ctx, disposition string) error {
	applicationID, err := c.GetID(ctx, "applicationId")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	resume, err := applicationhandler.Instance.GetResume(ctx.UserContext(), middleware.GetUserID(ctx), middleware.GetUserRole(ctx), applicationID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("application_id", applicationID), err, "failed to get resume")
	}
	ctx.Set(fiber.HeaderContentType, resume.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`%s; filename="%s"`, disposition, applicationapimodels.SanitizeFileName(resume.FileName)))
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	// the body is closed by fasthttp once sent
	return ctx.Status(fiber.StatusOK).SendStream(resume.Body, int(resume.Size))
}
