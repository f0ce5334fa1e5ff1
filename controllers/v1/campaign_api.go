package apiv1

import (
	"fmt"

	"iga-backend/controllers"
	campaignhandler "iga-backend/lib/campaign"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"
	campaignapimodels "iga-backend/models/api/campaign"

	"github.com/gofiber/fiber/v2"
)

type campaignApiController struct {
	controllers.BaseAPIController
}

func InitCampaignApiRouters(app fiber.Router) {
	controller := campaignApiController{}
	app.Route("campaigns", func(campaignRootRoute fiber.Router) {
		campaignRootRoute.Post("", controller.Create)
		campaignRootRoute.Get("", controller.List)
		campaignRootRoute.Route(":id", func(campaignIDRoute fiber.Router) {
			campaignIDRoute.Get("", controller.Get)
			campaignIDRoute.Get("items", controller.Items)
			campaignIDRoute.Get("export", controller.Export)
		})
	})
}

// @Summary Generate a review campaign
// @Tags Campaigns
// @Description Enumerates Okta group memberships of the assets in scope and creates one pending item per person and asset
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		campaignapimodels.CampaignCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=campaignapimodels.CampaignResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 412 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/campaigns [post]
func (c *campaignApiController) Create(ctx *fiber.Ctx) error {
	var payload campaignapimodels.CampaignCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := campaignhandler.Instance.Generate(ctx.UserContext(), middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "campaign generation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Campaign list
// @Tags Campaigns
// @Description Campaigns with item counters, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status				query		string	false	"active or completed"
// @Param	page				query		int		false	"page number"
// @Param	limit				query		int		false	"rows per page"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]campaignapimodels.CampaignView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/campaigns [get]
func (c *campaignApiController) List(ctx *fiber.Ctx) error {
	var filter campaignapimodels.CampaignFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := campaignhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "campaign list not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Campaign
// @Tags Campaigns
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"campaign ID"
// @Success 200 {object} apimodels.Response{data=campaignapimodels.CampaignView}
// @Failure 404 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/campaigns/{id} [get]
func (c *campaignApiController) Get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := campaignhandler.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "campaign not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Campaign review items
// @Tags Campaigns
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"campaign ID"
// @Success 200 {object} apimodels.Response{data=[]reviewapimodels.ReviewItemView}
// @Failure 404 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/campaigns/{id}/items [get]
func (c *campaignApiController) Items(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := campaignhandler.Instance.Items(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "campaign items not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Campaign report
// @Tags Campaigns
// @Description XLSX workbook or PDF attestation. With upload=true the file is stored in S3 and a presigned link is returned
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"campaign ID"
// @Param	format				query		string	false	"xlsx (default) or pdf"
// @Param	upload				query		bool	false	"store in S3 and return a link"
// @Success 200 {object} apimodels.Response{data=campaignapimodels.ExportResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 412 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/campaigns/{id}/export [get]
func (c *campaignApiController) Export(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var req campaignapimodels.ExportRequest
	if err = c.QueryParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := campaignhandler.Instance.Export(ctx.UserContext(), id, req)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "campaign report not built")
	}
	if result.URL != "" {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
	}
	ctx.Set(fiber.HeaderContentType, result.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return ctx.Status(fiber.StatusOK).Send(result.Body)
}
