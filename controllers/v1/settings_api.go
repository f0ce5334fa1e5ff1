package apiv1

import (
	"iga-backend/controllers"
	settingshandler "iga-backend/lib/settings"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"
	settingsapimodels "iga-backend/models/api/settings"

	"github.com/gofiber/fiber/v2"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app fiber.Router) {
	controller := settingsApiController{}
	app.Route("settings", func(settingsRootRoute fiber.Router) {
		settingsRootRoute.Use(middleware.AdminRequired())

		settingsRootRoute.Get("", controller.Get)
		settingsRootRoute.Put("", controller.Update)
		settingsRootRoute.Post("test/okta", controller.TestOkta)
		settingsRootRoute.Post("test/bamboohr", controller.TestBambooHR)
	})
}

// @Summary Integration settings
// @Tags Settings
// @Description Secrets are reported as set or not set, never returned
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.SettingsView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) Get(ctx *fiber.Ctx) error {
	view, err := settingshandler.Instance.GetView()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "settings not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Update integration settings
// @Tags Settings
// @Description Partial update, omitted fields keep their values
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		settingsapimodels.SettingsUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.SettingsView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [put]
func (c *settingsApiController) Update(ctx *fiber.Ctx) error {
	var payload settingsapimodels.SettingsUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := settingshandler.Instance.Update(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "settings not updated")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Test the Okta connection
// @Tags Settings
// @Description Uses the stored credentials unless overridden in the body
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		settingsapimodels.OktaTestRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.ConnectionTestResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/settings/test/okta [post]
func (c *settingsApiController) TestOkta(ctx *fiber.Ctx) error {
	var payload settingsapimodels.OktaTestRequest
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	result := settingshandler.Instance.TestOkta(ctx.UserContext(), payload)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Test the BambooHR connection
// @Tags Settings
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		settingsapimodels.BambooHRTestRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=settingsapimodels.ConnectionTestResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @router /api/v1/settings/test/bamboohr [post]
func (c *settingsApiController) TestBambooHR(ctx *fiber.Ctx) error {
	var payload settingsapimodels.BambooHRTestRequest
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	result := settingshandler.Instance.TestBambooHR(ctx.UserContext(), payload)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
