package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	notificationhandler "iga-backend/lib/notification"
	notificationapimodels "iga-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// ErrNotify posts server errors to a Slack channel.
func ErrNotify(notifier notificationhandler.Provider, channel string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				statusCode = fe.Code
			} else {
				statusCode = http.StatusInternalServerError
			}
		}
		if statusCode < http.StatusInternalServerError {
			return err
		}

		var data struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		body := c.Response().Body()
		if unmErr := json.Unmarshal(body, &data); unmErr != nil && len(body) > 0 {
			log.WithError(unmErr).Warn("error unmarshalling response body in middleware")
		}
		msg := data.Message
		if msg == "" && err != nil {
			msg = err.Error()
		}
		if msg == "" {
			msg = string(body)
		}
		method := c.Method()
		path := c.OriginalURL()
		if r := c.Route(); r != nil {
			path = r.Path
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_, sendErr := notifier.SendSlack(ctx, notificationapimodels.SlackMessage{
				Channel: channel,
				Text:    fmt.Sprintf("%d %s %s: %s", statusCode, method, path, msg),
			})
			if sendErr != nil {
				log.WithError(sendErr).Warn("error sending error notification")
			}
		}()
		return err
	}
}
