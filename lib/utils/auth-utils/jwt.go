package authutils

import (
	"recruitment-backend/config"
	"recruitment-backend/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func GetToken(userID, name string, role models.UserRole) (tokenString string, err error) {
	return signToken(userID, name, role, config.Conf.Auth.JWTSecret, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec))
}

func signToken(userID, name string, role models.UserRole, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"name": name,
		"sub":  userID,
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetUserIDFromClaims(claims jwt.MapClaims) string {
	userID, _ := claims["sub"].(string)
	return userID
}

func GetRoleFromClaims(claims jwt.MapClaims) models.UserRole {
	role, _ := claims["role"].(string)
	return models.UserRole(role)
}
