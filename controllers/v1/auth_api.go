package apiv1

import (
	"recruitment-backend/controllers"
	authhandler "recruitment-backend/lib/auth"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"
	authapimodels "recruitment-backend/models/api/auth"

	"github.com/gofiber/fiber/v2"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app fiber.Router) {
	controller := authApiController{}
	authRequired := middleware.AuthorizationRequired()
	rbac := middleware.RbacMiddleware()
	app.Route("auth", func(router fiber.Router) {
		router.Post("register", controller.register)
		router.Post("login", controller.login)
		router.Patch("approve-hr/:id", authRequired, rbac, controller.approveHr)
		router.Patch("disapprove-hr/:id", authRequired, rbac, controller.disapproveHr)
		router.Get("hrs", authRequired, rbac, controller.listHrs)
	})
}

// @Summary Register
// @Tags Auth
// @Description Register an HR or candidate account. HR accounts wait for admin approval.
// @Param	body				body		authapimodels.RegisterRequest	true	"request body"
// @Success 201 {object} authapimodels.RegisterResponse
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /auth/register [post]
func (c *authApiController) register(ctx *fiber.Ctx) error {
	var payload authapimodels.RegisterRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	msg, err := authhandler.Instance.Register(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to register user")
	}
	return ctx.Status(fiber.StatusCreated).JSON(authapimodels.RegisterResponse{Message: msg})
}

// @Summary Login
// @Tags Auth
// @Description Login by email and password
// @Param	body				body		authapimodels.LoginRequest	true	"request body"
// @Success 200 {object} authapimodels.LoginResponse
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /auth/login [post]
func (c *authApiController) login(ctx *fiber.Ctx) error {
	var payload authapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := authhandler.Instance.Login(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to login")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary Approve HR
// @Tags Auth
// @Description Approve an HR account and notify the HR by email
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "HR user ID"
// @Success 200 {object} authapimodels.ApprovalResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /auth/approve-hr/{id} [patch]
func (c *authApiController) approveHr(ctx *fiber.Ctx) error {
	return c.setApproval(ctx, true)
}

// @Summary Disapprove HR
// @Tags Auth
// @Description Revoke the approval of an HR account and notify the HR by email
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "HR user ID"
// @Success 200 {object} authapimodels.ApprovalResponse
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /auth/disapprove-hr/{id} [patch]
func (c *authApiController) disapproveHr(ctx *fiber.Ctx) error {
	return c.setApproval(ctx, false)
}

func (c *authApiController) setApproval(ctx *fiber.Ctx, isApproved bool) error {
	hrID, err := c.GetID(ctx, "id")
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "")
	}
	resp, err := authhandler.Instance.SetHrApproval(ctx.UserContext(), hrID, isApproved)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("hr_id", hrID), err, "failed to change HR approval")
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// @Summary HR list
// @Tags Auth
// @Description List HR accounts, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {array} authapimodels.HrView
// @Failure 401 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /auth/hrs [get]
func (c *authApiController) listHrs(ctx *fiber.Ctx) error {
	list, err := authhandler.Instance.ListHRs(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list HR accounts")
	}
	return ctx.Status(fiber.StatusOK).JSON(list)
}
