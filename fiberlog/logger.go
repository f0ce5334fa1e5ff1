package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	cfg := configDefault(config...)
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		d := &data{
			pid:       pid,
			start:     time.Now(),
			requestID: c.Get(RequestIDHeader),
		}
		if d.requestID == "" {
			d.requestID = newRequestID()
		}
		c.Locals(RequestID, d.requestID)
		c.Set(RequestIDHeader, d.requestID)

		err := c.Next()
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions || cfg.skip(c.Path()) {
			return err
		}

		fields := getLogrusFields(ftm, c, d)
		if cfg.Logger == nil {
			log.WithFields(fields).Info(getMessage(c))
			return err
		}
		entity := cfg.Logger.WithFields(fields)
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			entity.Warn(getMessage(c))
		} else {
			entity.Info(getMessage(c))
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "api request"
}
