package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"iga-backend/config"
	authutils "iga-backend/lib/utils/auth-utils"
	"iga-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.RoleClaim = "role"
	t.Cleanup(func() {
		config.Conf = nil
	})

	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserEmail(ctx) + "|" + string(GetUserRole(ctx)))
	})
	app.Get("/admin", AdminRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) (int, string) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.Nil(t, err)
	defer resp.Body.Close()
	body := new(strings.Builder)
	_, _ = io.Copy(body, resp.Body)
	return resp.StatusCode, body.String()
}

func TestAuthorization(t *testing.T) {
	app := newTestApp(t)

	status, _ := call(t, app, "/whoami", "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	badToken, err := authutils.GetToken("other-secret", "bob@co.com", models.AdminRole, time.Hour)
	require.Nil(t, err)
	status, _ = call(t, app, "/whoami", badToken)
	require.Equal(t, fiber.StatusUnauthorized, status)

	reviewer, err := authutils.GetToken("test-secret", "Bob@Co.com", models.ReviewerRole, time.Hour)
	require.Nil(t, err)
	status, body := call(t, app, "/whoami", reviewer)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "bob@co.com|user", body)

	status, _ = call(t, app, "/admin", reviewer)
	require.Equal(t, fiber.StatusForbidden, status)

	admin, err := authutils.GetToken("test-secret", "root@co.com", models.AdminRole, time.Hour)
	require.Nil(t, err)
	status, _ = call(t, app, "/admin", admin)
	require.Equal(t, fiber.StatusNoContent, status)

	expired, err := authutils.GetToken("test-secret", "root@co.com", models.AdminRole, -time.Hour)
	require.Nil(t, err)
	status, _ = call(t, app, "/admin", expired)
	require.Equal(t, fiber.StatusUnauthorized, status)
}

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(8))
	app.Post("/", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("definitely too large")))
	require.Nil(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}
