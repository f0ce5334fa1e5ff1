package apiv1

import (
	"iga-backend/controllers"
	auditloghandler "iga-backend/lib/audit-log"
	apimodels "iga-backend/models/api"
	auditapimodels "iga-backend/models/api/audit"

	"github.com/gofiber/fiber/v2"
)

type auditApiController struct {
	controllers.BaseAPIController
}

func InitAuditApiRouters(app fiber.Router) {
	controller := auditApiController{}
	app.Get("audit_logs", controller.List)
}

// @Summary Audit log
// @Tags Audit
// @Description Append-only trail of governance actions, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	action				query		string	false	"action"
// @Param	actor_email			query		string	false	"actor e-mail"
// @Param	target_user			query		string	false	"target user"
// @Param	date_from			query		string	false	"YYYY-MM-DD, inclusive"
// @Param	date_to				query		string	false	"YYYY-MM-DD, inclusive"
// @Param	page				query		int		false	"page number"
// @Param	limit				query		int		false	"rows per page"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]auditapimodels.AuditLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/audit_logs [get]
func (c *auditApiController) List(ctx *fiber.Ctx) error {
	var filter auditapimodels.AuditLogFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := filter.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := auditloghandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "audit log not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
