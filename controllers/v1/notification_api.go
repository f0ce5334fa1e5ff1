package apiv1

import (
	"iga-backend/controllers"
	notificationhandler "iga-backend/lib/notification"
	apimodels "iga-backend/models/api"
	notificationapimodels "iga-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Post("notifications/slack", controller.SendSlack)
}

// @Summary Post a Slack message
// @Tags Notifications
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		notificationapimodels.SlackMessage	true	"request body"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.SlackMessageResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 412 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/notifications/slack [post]
func (c *notificationApiController) SendSlack(ctx *fiber.Ctx) error {
	var payload notificationapimodels.SlackMessage
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := notificationhandler.Instance.SendSlack(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "slack message not sent")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
