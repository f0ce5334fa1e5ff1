package bamboohrclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"iga-backend/models"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBambooHRClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key-1" || pass != "x" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/acme/v1/reports/42":
			require.Equal(t, "json", r.URL.Query().Get("format"))
			require.Equal(t, "yes", r.URL.Query().Get("fd"))
			require.Equal(t, "1", r.URL.Query().Get("onlyCurrent"))
			_, _ = w.Write([]byte(`{"employees":[{"workEmail":"a@example.com","displayName":"A"}]}`))
		case "/acme/v1/reports/7":
			_, _ = w.Write([]byte(`{"fields":[]}`))
		case "/acme/v1/meta/fields":
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	client := NewClient(func(subdomain string) string {
		return server.URL + "/" + subdomain + "/v1"
	}, time.Second)
	ctx := context.Background()
	source := dbmodels.BambooHRSource{WorkerType: models.WorkerEmployee, Subdomain: "acme", ApiKey: "key-1", ReportID: "42"}

	t.Run(`fetch report`, func(t *testing.T) {
		records, err := client.FetchReport(ctx, source)
		require.Nil(t, err)
		require.Len(t, records, 1)
		require.Equal(t, "a@example.com", records[0]["workEmail"])
	})

	t.Run(`payload without employees`, func(t *testing.T) {
		broken := source
		broken.ReportID = "7"
		_, err := client.FetchReport(ctx, broken)
		require.True(t, errors.Is(err, models.ErrUpstream))
	})

	t.Run(`bad key`, func(t *testing.T) {
		bad := source
		bad.ApiKey = "nope"
		_, err := client.FetchReport(ctx, bad)
		require.True(t, errors.Is(err, models.ErrUpstream))
		require.NotNil(t, client.CheckCredentials(ctx, "acme", "nope"))
		require.Nil(t, client.CheckCredentials(ctx, "acme", "key-1"))
	})

	t.Run(`default url`, func(t *testing.T) {
		require.Equal(t, "https://acme.bamboohr.com/api/gateway.php/acme/v1", DefaultBaseURL("acme"))
	})
}
