package controllers

import (
	"strings"

	"iga-backend/fiberlog"
	"iga-backend/middleware"
	"iga-backend/models"
	apimodels "iga-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request body not parsed")
		return errors.New("unable to read request body")
	}
	return nil
}

func (c *BaseAPIController) QueryParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		log.WithError(err).Error("query parameters not parsed")
		return errors.New("unable to read query parameters")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := strings.TrimSpace(ctx.Params(key))
	if id == "" {
		return "", errors.Errorf("path parameter %s is required", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("request_id", fiberlog.GetRequestID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
	if email := middleware.GetUserEmail(ctx); email != "" {
		logger = logger.WithField("actor_email", email)
	}
	return logger
}

// SendError maps governance error kinds to HTTP statuses. Anything else is
// logged and answered with 500 and the given public message.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	status := StatusByError(err)
	if status == fiber.StatusInternalServerError {
		logger.WithError(err).Error(message)
		return ctx.Status(status).JSON(apimodels.NewError(message))
	}
	logger.WithError(err).Warn(message)
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}

func StatusByError(err error) int {
	var govErr *models.GovernanceError
	if !errors.As(err, &govErr) {
		return fiber.StatusInternalServerError
	}
	switch govErr.Kind {
	case models.KindValidation:
		return fiber.StatusBadRequest
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindConflict:
		return fiber.StatusConflict
	case models.KindForbidden:
		return fiber.StatusForbidden
	case models.KindConfiguration:
		return fiber.StatusPreconditionFailed
	case models.KindUpstream:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
