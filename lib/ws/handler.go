package ws

import (
	wsclient "recruitment-backend/lib/ws/client"
	connectionhub "recruitment-backend/lib/ws/hub/connection-hub"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(router fiber.Router) {
	router.Get("/ws",
		middleware.AuthorizationRequired(),
		middleware.RbacMiddleware(),
		func(ctx *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(ctx) {
				return ctx.Status(fiber.StatusUpgradeRequired).JSON(apimodels.NewError("Websocket upgrade required"))
			}
			ctx.Locals("userID", middleware.GetUserID(ctx))
			return ctx.Next()
		},
		websocket.New(pushHandler),
	)
}

// @Summary System push
// @Tags Websocket
// @Description Lifecycle events of applications and jobs. Token via Authorization header or token query param.
// @Param   Authorization		header		string		false		"Authorization token"
// @Param   token		query		string		false		"Authorization token"
// @Success 101 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /ws [get]
func pushHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	if userID == "" {
		return
	}
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	client.Dispatch()
}
