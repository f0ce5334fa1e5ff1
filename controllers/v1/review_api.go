package apiv1

import (
	"iga-backend/controllers"
	reviewhandler "iga-backend/lib/review"
	"iga-backend/lib/utils/helpers"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/gofiber/fiber/v2"
)

type reviewApiController struct {
	controllers.BaseAPIController
}

func InitReviewApiRouters(app fiber.Router) {
	controller := reviewApiController{}
	app.Route("reviews", func(reviewRootRoute fiber.Router) {
		reviewRootRoute.Get("pending", controller.Pending)
		reviewRootRoute.Get("history", controller.History)
		reviewRootRoute.Post("delegate", controller.Delegate)
		reviewRootRoute.Post(":id/decision", controller.Decision)
	})
}

// @Summary Submit a review decision
// @Tags Reviews
// @Description Approve or revoke access. Revoking an SSO asset removes the person from the Okta group when auto-revocation is enabled
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"review item ID"
// @Param	body				body		reviewapimodels.DecisionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=reviewapimodels.DecisionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/{id}/decision [post]
func (c *reviewApiController) Decision(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload reviewapimodels.DecisionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := reviewhandler.Instance.SubmitDecision(ctx.UserContext(), reviewapimodels.DecisionData{
		ReviewItemID:  id,
		Decision:      payload.Decision,
		ActorEmail:    middleware.GetUserEmail(ctx),
		ActorRole:     middleware.GetUserRole(ctx),
		EvidenceNotes: payload.EvidenceNotes,
	})
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "review decision not saved")
	}
	if result.Warning != "" {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponseWithMessage(result, result.Warning))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Delegate pending reviews
// @Tags Reviews
// @Description Reassigns every pending item of from_email to to_email. from_email defaults to the caller, only administrators may delegate for someone else
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		reviewapimodels.DelegationRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=reviewapimodels.DelegationResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/delegate [post]
func (c *reviewApiController) Delegate(ctx *fiber.Ctx) error {
	var payload reviewapimodels.DelegationRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	caller := middleware.GetUserEmail(ctx)
	if helpers.NormalizeEmail(payload.FromEmail) == "" {
		payload.FromEmail = caller
	}
	if !c.mayActFor(ctx, payload.FromEmail) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("only administrators may delegate reviews of another reviewer"))
	}
	result, err := reviewhandler.Instance.Delegate(ctx.UserContext(), caller, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "reviews not delegated")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Pending reviews
// @Tags Reviews
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	reviewer			query		string	false	"reviewer e-mail, defaults to the caller"
// @Param	campaign_id			query		string	false	"campaign ID"
// @Param	page				query		int		false	"page number"
// @Param	limit				query		int		false	"rows per page"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]reviewapimodels.ReviewItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/pending [get]
func (c *reviewApiController) Pending(ctx *fiber.Ctx) error {
	return c.list(ctx, reviewhandler.Instance.Pending)
}

// @Summary Review history
// @Tags Reviews
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	reviewer			query		string	false	"reviewer e-mail, defaults to the caller"
// @Param	campaign_id			query		string	false	"campaign ID"
// @Param	page				query		int		false	"page number"
// @Param	limit				query		int		false	"rows per page"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]reviewapimodels.ReviewItemView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reviews/history [get]
func (c *reviewApiController) History(ctx *fiber.Ctx) error {
	return c.list(ctx, reviewhandler.Instance.History)
}

func (c *reviewApiController) list(ctx *fiber.Ctx, fetch func(reviewapimodels.ReviewerFilter) ([]reviewapimodels.ReviewItemView, int64, error)) error {
	var filter reviewapimodels.ReviewerFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if helpers.NormalizeEmail(filter.Reviewer) == "" {
		filter.Reviewer = middleware.GetUserEmail(ctx)
	}
	if !c.mayActFor(ctx, filter.Reviewer) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("only administrators may read reviews of another reviewer"))
	}
	list, rowCount, err := fetch(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "review items not loaded")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

func (c *reviewApiController) mayActFor(ctx *fiber.Ctx, reviewer string) bool {
	if middleware.GetUserRole(ctx).IsAdmin() {
		return true
	}
	return helpers.NormalizeEmail(reviewer) == middleware.GetUserEmail(ctx)
}
