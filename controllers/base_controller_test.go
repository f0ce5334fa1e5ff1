package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"iga-backend/models"
	apimodels "iga-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestStatusByError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{models.ValidationError("bad"), fiber.StatusBadRequest},
		{models.NotFoundError("missing"), fiber.StatusNotFound},
		{models.ConflictError("decided"), fiber.StatusConflict},
		{models.ForbiddenError("self"), fiber.StatusForbidden},
		{models.ConfigurationError("okta"), fiber.StatusPreconditionFailed},
		{models.UpstreamError("okta 503"), fiber.StatusBadGateway},
		{errors.Wrap(models.ConflictError("decided"), "review decision"), fiber.StatusConflict},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.status, StatusByError(tc.err), tc.err.Error())
	}
}

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/conflict", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), models.ConflictError("item already decided"), "decision failed")
	})
	app.Get("/internal", func(ctx *fiber.Ctx) error {
		return c.SendError(ctx, log.NewEntry(log.StandardLogger()), errors.New("pq: password authentication failed"), "decision failed")
	})

	read := func(path string) (int, apimodels.Response) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.Nil(t, err)
		defer resp.Body.Close()
		body := apimodels.Response{}
		require.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	status, body := read("/conflict")
	require.Equal(t, fiber.StatusConflict, status)
	require.Equal(t, "fail", body.Status)
	require.Equal(t, "item already decided", body.Message)

	status, body = read("/internal")
	require.Equal(t, fiber.StatusInternalServerError, status)
	require.Equal(t, "decision failed", body.Message)
}
