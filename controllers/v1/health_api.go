package apiv1

import (
	"context"
	"recruitment-backend/controllers"
	"recruitment-backend/db"
	"time"

	"github.com/gofiber/fiber/v2"
)

type healthApiController struct {
	controllers.BaseAPIController
	ping func(ctx context.Context) error
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func InitHealthRouters(app fiber.Router) {
	initHealthRouters(app, db.PingDB)
}

func initHealthRouters(app fiber.Router, ping func(ctx context.Context) error) {
	controller := healthApiController{ping: ping}
	app.Get("health", controller.health)
}

// @Summary Health
// @Tags System
// @Description Liveness with a database ping
// @Success 200 {object} apiv1.HealthResponse
// @Failure 503 {object} apiv1.HealthResponse
// @router /health [get]
func (c *healthApiController) health(ctx *fiber.Ctx) error {
	pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
	defer cancel()
	if err := c.ping(pingCtx); err != nil {
		c.GetLogger(ctx).WithError(err).Warn("health: database ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "degraded", Database: "down"})
	}
	return ctx.Status(fiber.StatusOK).JSON(HealthResponse{Status: "ok", Database: "up"})
}
