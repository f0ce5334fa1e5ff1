package externalservices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"iga-backend/models"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestExtHelpers(t *testing.T) {
	t.Run(`ExtractAuditData from pure ctx check`, func(t *testing.T) {
		ctx := context.TODO()
		ctxData := ExtractAuditData(ctx)
		require.Equal(t, false, ctxData.WithAudit)
		require.Equal(t, "", ctxData.RecID)
	})

	t.Run(`ExtractAuditData from filled ctx check`, func(t *testing.T) {
		expectedRecType := "review_item"
		expectedRecID := "someRecID"
		expectedUri := "someUri"
		expectedRequest := "someRequest"
		ctx := context.TODO()
		ctx = GetContextWithRecID(ctx, expectedRecType, expectedRecID)
		ctxData := ExtractAuditData(ctx)
		require.Equal(t, false, ctxData.WithAudit)
		require.Equal(t, expectedRecType, ctxData.RecType)
		require.Equal(t, expectedRecID, ctxData.RecID)

		ctx = GetAuditContext(ctx, expectedUri, []byte(expectedRequest))
		ctxData = ExtractAuditData(ctx)
		require.Equal(t, true, ctxData.WithAudit)
		require.Equal(t, expectedUri, ctxData.Uri)
		require.Equal(t, expectedRequest, ctxData.Request)
		require.Equal(t, expectedRecID, ctxData.RecID)
	})

	t.Run(`NormalizeDomain`, func(t *testing.T) {
		require.Equal(t, "acme.okta.com", NormalizeDomain(" https://acme.okta.com/ "))
		require.Equal(t, "acme.okta.com", NormalizeDomain("HTTP://acme.okta.com//"))
		require.Equal(t, "acme.okta.com", NormalizeDomain("acme.okta.com"))
	})
}

func TestSender(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"value"}`))
		case "/broken":
			_, _ = w.Write([]byte(`{not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errorCode":"E0000007"}`))
		}
	}))
	defer server.Close()
	sender := NewSender("test", time.Second, nil)
	logger := log.WithField("test", true)

	t.Run(`decodes success body`, func(t *testing.T) {
		r, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/ok", nil)
		resp := struct {
			Name string `json:"name"`
		}{}
		_, err := sender.SendRequest(context.Background(), logger, r, &resp)
		require.Nil(t, err)
		require.Equal(t, "value", resp.Name)
	})

	t.Run(`non-2xx is upstream error with status`, func(t *testing.T) {
		r, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/missing", nil)
		body, err := sender.SendRequest(context.Background(), logger, r, nil)
		require.NotNil(t, err)
		require.True(t, errors.Is(err, models.ErrUpstream))
		require.Equal(t, http.StatusNotFound, StatusCode(err))
		require.Contains(t, string(body), "E0000007")
	})

	t.Run(`malformed body is upstream error`, func(t *testing.T) {
		r, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, server.URL+"/broken", nil)
		resp := map[string]any{}
		_, err := sender.SendRequest(context.Background(), logger, r, &resp)
		require.True(t, errors.Is(err, models.ErrUpstream))
		require.Equal(t, 0, StatusCode(err))
	})
}
