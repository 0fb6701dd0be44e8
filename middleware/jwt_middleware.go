package middleware

import (
	"recruitment-backend/config"
	apimodels "recruitment-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

func AuthorizationRequired() fiber.Handler {
	return authorizationRequired(config.Conf.Auth.JWTSecret)
}

func authorizationRequired(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: jwtware.HS256,
			Key:    []byte(secret),
		},
		// browsers can not set headers on a websocket handshake
		TokenLookup: "header:Authorization,query:token",
		// only defaulted by jwtware when TokenLookup is empty
		AuthScheme: "Bearer",
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("No token provided"))
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("Invalid or expired token"))
		},
	})
}
