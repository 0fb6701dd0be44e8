package middleware

import (
	authutils "recruitment-backend/lib/utils/auth-utils"
	"recruitment-backend/models"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetUserIDFromClaims(authutils.GetClaims(ctx))
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return authutils.GetRoleFromClaims(authutils.GetClaims(ctx))
}

func GetUserName(ctx *fiber.Ctx) string {
	name, _ := authutils.GetClaims(ctx)["name"].(string)
	return name
}
