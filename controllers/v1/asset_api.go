package apiv1

import (
	"iga-backend/controllers"
	assethandler "iga-backend/lib/asset"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"
	assetapimodels "iga-backend/models/api/asset"

	"github.com/gofiber/fiber/v2"
)

type assetApiController struct {
	controllers.BaseAPIController
}

func InitAssetApiRouters(app fiber.Router) {
	controller := assetApiController{}
	app.Route("assets", func(assetRootRoute fiber.Router) {
		assetRootRoute.Get("", controller.List)
		assetRootRoute.Post("", controller.Create)
		assetRootRoute.Get("mine", controller.Mine)
		assetRootRoute.Route(":id", func(assetIDRoute fiber.Router) {
			assetIDRoute.Put("", controller.Update)
			assetIDRoute.Get("groups", controller.Groups)
		})
	})
}

// @Summary Asset list
// @Tags Assets
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.Asset}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assets [get]
func (c *assetApiController) List(ctx *fiber.Ctx) error {
	list, err := assethandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "assets not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Assets owned by the caller
// @Tags Assets
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.Asset}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assets/mine [get]
func (c *assetApiController) Mine(ctx *fiber.Ctx) error {
	list, err := assethandler.Instance.Mine(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "assets not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Create an asset
// @Tags Assets
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assetapimodels.AssetData	true	"request body"
// @Success 200 {object} apimodels.Response{data=apimodels.CreatedResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assets [post]
func (c *assetApiController) Create(ctx *fiber.Ctx) error {
	var payload assetapimodels.AssetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := assethandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "asset not created")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(apimodels.CreatedResponse{ID: id}))
}

// @Summary Update an asset
// @Tags Assets
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"asset ID"
// @Param	body				body		assetapimodels.AssetData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assets/{id} [put]
func (c *assetApiController) Update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assetapimodels.AssetData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = assethandler.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "asset not updated")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Okta groups of an asset
// @Tags Assets
// @Description Lists the groups assigned to the asset's Okta app with their members and refreshes member_count
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"asset ID"
// @Success 200 {object} apimodels.Response{data=assetapimodels.AssetGroupsResult}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 412 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assets/{id}/groups [get]
func (c *assetApiController) Groups(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := assethandler.Instance.Groups(ctx.UserContext(), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "asset groups not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
