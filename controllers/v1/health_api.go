package apiv1

import (
	"iga-backend/controllers"
	"iga-backend/db"
	"iga-backend/lib/rbac"
	"iga-backend/middleware"
	apimodels "iga-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type healthApiController struct {
	controllers.BaseAPIController
}

type HealthView struct {
	Database string `json:"database"`
}

type ProfileView struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	RoleName    string      `json:"role_name"`
	Permissions interface{} `json:"permissions"`
}

// InitHealthRouters registers routes served without a token.
func InitHealthRouters(app fiber.Router) {
	controller := healthApiController{}
	app.Get("health", controller.Health)
}

func InitProfileRouters(app fiber.Router) {
	controller := healthApiController{}
	app.Get("me", controller.Me)
}

// @Summary Service health
// @Tags Service
// @Success 200 {object} apimodels.Response{data=HealthView}
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func (c *healthApiController) Health(ctx *fiber.Ctx) error {
	if err := db.PingDB(); err != nil {
		c.GetLogger(ctx).WithError(err).Error("database ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("database unavailable"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(HealthView{Database: "ok"}))
}

// @Summary Caller identity and permissions
// @Tags Service
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=ProfileView}
// @router /api/v1/me [get]
func (c *healthApiController) Me(ctx *fiber.Ctx) error {
	role := middleware.GetUserRole(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(ProfileView{
		Email:       middleware.GetUserEmail(ctx),
		Role:        string(role),
		RoleName:    role.ToHuman(),
		Permissions: rbac.Instance.GetPermissions(role),
	}))
}
