package apiv1

import (
	"iga-backend/controllers"
	directorysynchandler "iga-backend/lib/directory-sync"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"
	directoryapimodels "iga-backend/models/api/directory"

	"github.com/gofiber/fiber/v2"
)

type directoryApiController struct {
	controllers.BaseAPIController
}

func InitDirectoryApiRouters(app fiber.Router) {
	controller := directoryApiController{}
	app.Route("directory", func(directoryRootRoute fiber.Router) {
		directoryRootRoute.Post("employees/sync", controller.SyncEmployees)
		directoryRootRoute.Post("slack/sync", controller.SyncSlack)
	})
	app.Get("employees", controller.Employees)
}

// @Summary Mirror employees from BambooHR
// @Tags Directory
// @Description Fetches the configured reports and replaces the local directory rows of the synced worker types
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		directoryapimodels.EmployeesSyncRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=directoryapimodels.EmployeesSyncResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 412 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/directory/employees/sync [post]
func (c *directoryApiController) SyncEmployees(ctx *fiber.Ctx) error {
	var payload directoryapimodels.EmployeesSyncRequest
	if len(ctx.Body()) > 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	result, err := directorysynchandler.Instance.SyncEmployees(ctx.UserContext(), middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employee sync failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Match Slack users to employees
// @Tags Directory
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=directoryapimodels.SlackSyncResult}
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 412 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/directory/slack/sync [post]
func (c *directoryApiController) SyncSlack(ctx *fiber.Ctx) error {
	result, err := directorysynchandler.Instance.SyncSlackIDs(ctx.UserContext(), middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "slack id sync failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Employee directory
// @Tags Directory
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	search				query		string	false	"e-mail or name fragment"
// @Param	worker_type			query		string	false	"Employee or Contractor"
// @Param	department			query		string	false	"department"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.Employee}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employees [get]
func (c *directoryApiController) Employees(ctx *fiber.Ctx) error {
	var filter directoryapimodels.EmployeeFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := directorysynchandler.Instance.ListEmployees(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "employees not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
