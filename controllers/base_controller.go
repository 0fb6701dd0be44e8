package controllers

import (
	apperrors "recruitment-backend/lib/utils/app-errors"
	"recruitment-backend/middleware"
	apimodels "recruitment-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Warn("failed to parse request body")
		return errors.New("Invalid request body")
	}
	return nil
}

// GetID returns a required path param.
func (c *BaseAPIController) GetID(ctx *fiber.Ctx, name string) (string, error) {
	id := ctx.Params(name)
	if id == "" {
		return "", apperrors.Validation(name + " is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.WithFields(log.Fields{
		"user_id": middleware.GetUserID(ctx),
		"method":  ctx.Method(),
		"path":    ctx.Path(),
	})
}

// SendError maps err to its HTTP status. Unexpected errors are logged with msg and hidden from the caller.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	kind := apperrors.KindOf(err)
	if kind == apperrors.KindInternal {
		logger.WithError(err).Error(msg)
	}
	return ctx.Status(apperrors.HttpStatus(kind)).JSON(apimodels.NewError(apperrors.Message(err)))
}
