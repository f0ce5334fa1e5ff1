package oktaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	externalservices "iga-backend/lib/external-services"
	"iga-backend/models"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestOktaClient(t *testing.T) {
	var server *httptest.Server
	var deleted []string
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "SSWS token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errorCode":"E0000011","errorSummary":"Invalid token provided"}`))
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/apps/app-1/groups":
			_, _ = w.Write([]byte(`[{"id":"g1","profile":{"name":"Admins"}},{"id":"g2","profile":{}}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/groups/g1/users" && r.URL.Query().Get("after") == "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/groups/g1/users?limit=200>; rel="self", <%s/api/v1/groups/g1/users?after=u1&limit=200>; rel="next"`, server.URL, server.URL))
			_, _ = w.Write([]byte(`[{"id":"u1","profile":{"email":"Alice@Example.com","login":"alice"}}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/groups/g1/users":
			_, _ = w.Write([]byte(`[{"id":"u2","profile":{"login":"bob@example.com"}}]`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/v1/groups/g1/users/u1":
			deleted = append(deleted, "g1/u1")
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/users":
			require.Equal(t, "1", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`[]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()
	client := NewClient(server.URL+"/api/v1", "token-1")
	ctx := context.Background()

	t.Run(`app groups with name fallback`, func(t *testing.T) {
		groups, err := client.ListAppGroups(ctx, "app-1")
		require.Nil(t, err)
		require.Len(t, groups, 2)
		require.Equal(t, "Admins", groups[0].DisplayName())
		require.Equal(t, "g2", groups[1].DisplayName())
	})

	t.Run(`group users follow next link`, func(t *testing.T) {
		users, err := client.ListGroupUsers(ctx, "g1")
		require.Nil(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "Alice@Example.com", users[0].ResolvedEmail())
		require.Equal(t, "bob@example.com", users[1].ResolvedEmail())
	})

	t.Run(`remove membership`, func(t *testing.T) {
		require.Nil(t, client.RemoveUserFromGroup(ctx, "g1", "u1"))
		require.Equal(t, []string{"g1/u1"}, deleted)
	})

	t.Run(`credentials check`, func(t *testing.T) {
		require.Nil(t, client.CheckCredentials(ctx))
		bad := NewClient(server.URL+"/api/v1", "wrong")
		err := bad.CheckCredentials(ctx)
		require.True(t, errors.Is(err, models.ErrUpstream))
		require.Equal(t, http.StatusUnauthorized, externalservices.StatusCode(err))
	})

	t.Run(`unknown app is upstream error`, func(t *testing.T) {
		_, err := client.ListAppGroups(ctx, "missing")
		require.True(t, errors.Is(err, models.ErrUpstream))
	})
}

func TestEndlessPagination(t *testing.T) {
	var server *httptest.Server
	requests := 0
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/groups/g1/users?after=u%d&limit=200>; rel="next"`, server.URL, requests))
		_, _ = w.Write([]byte(fmt.Sprintf(`[{"id":"u%d","profile":{"email":"u%d@example.com"}}]`, requests, requests)))
	}))
	defer server.Close()

	users, err := NewClient(server.URL+"/api/v1", "token-1").ListGroupUsers(context.Background(), "g1")
	require.True(t, errors.Is(err, models.ErrUpstream))
	require.Nil(t, users)
	require.Equal(t, maxPages, requests)
}

func TestBaseURL(t *testing.T) {
	require.Equal(t, "https://acme.okta.com/api/v1", BaseURL("https://acme.okta.com/"))
}

func TestNextLink(t *testing.T) {
	header := http.Header{}
	header.Add("Link", `<https://a/api/v1/users?limit=2>; rel="self"`)
	header.Add("Link", `<https://a/api/v1/users?after=x&limit=2>; rel="next"`)
	require.Equal(t, "https://a/api/v1/users?after=x&limit=2", nextLink(header))
	require.Equal(t, "", nextLink(http.Header{}))
}
