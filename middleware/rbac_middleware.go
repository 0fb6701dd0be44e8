package middleware

import (
	"recruitment-backend/lib/rbac"
	apimodels "recruitment-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func RbacMiddleware() fiber.Handler {
	return rbacMiddleware(rbac.Instance)
}

func rbacMiddleware(provider rbac.Provider) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		role := GetUserRole(ctx)
		if userID == "" || role == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("Unauthorized"))
		}

		handler, found := provider.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(userID, role, ctx.Path()) {
			log.WithFields(log.Fields{
				"user_id": userID,
				"role":    role,
				"path":    ctx.Path(),
			}).Warn("rbac: access denied")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("Access denied"))
		}
		return ctx.Next()
	}
}
