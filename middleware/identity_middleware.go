package middleware

import (
	"iga-backend/config"
	authutils "iga-backend/lib/utils/auth-utils"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserEmail returns the caller e-mail from the "email" claim, falling back to "sub".
func GetUserEmail(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	for _, key := range []string{"email", "sub"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return helpers.NormalizeEmail(value)
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	key := "role"
	if config.Conf != nil && config.Conf.Auth.RoleClaim != "" {
		key = config.Conf.Auth.RoleClaim
	}
	if role, ok := claims[key].(string); ok && role != "" {
		return models.UserRole(role)
	}
	return models.ReviewerRole
}
