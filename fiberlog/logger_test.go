package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRequestLog(t *testing.T) {
	out := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagMethod, TagPath, TagStatus, RequestID, "unknown"},
	}))
	app.Get("/campaigns", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetRequestID(ctx))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/campaigns", nil))
	require.Nil(t, err)
	requestID := resp.Header.Get(RequestIDHeader)
	require.Len(t, requestID, 26)

	entry := map[string]any{}
	require.Nil(t, json.Unmarshal(out.Bytes(), &entry))
	require.Equal(t, "GET", entry[TagMethod])
	require.Equal(t, "/campaigns", entry[TagPath])
	require.EqualValues(t, 200, entry[TagStatus])
	require.Equal(t, requestID, entry[RequestID])
	require.Equal(t, "info", entry["level"])
	require.NotContains(t, entry, "unknown")

	t.Run(`incoming request id is kept`, func(t *testing.T) {
		out.Reset()
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req.Header.Set(RequestIDHeader, "upstream-id")
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, "upstream-id", resp.Header.Get(RequestIDHeader))

		entry := map[string]any{}
		require.Nil(t, json.Unmarshal(out.Bytes(), &entry))
		require.Equal(t, "warning", entry["level"])
	})

	t.Run(`skipped path`, func(t *testing.T) {
		out.Reset()
		app := fiber.New()
		app.Use(New(Config{Logger: logger, SkipPaths: []string{"/health"}}))
		app.Get("/health", func(ctx *fiber.Ctx) error {
			return ctx.SendString("ok")
		})
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Nil(t, err)
		require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
		require.Zero(t, out.Len())
	})
}
