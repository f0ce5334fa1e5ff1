package rbac

import (
	"testing"

	"iga-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, methods, err := parseSwaggerPattern("/api/v1/reviews/{id}/decision [post]")
		require.Nil(t, err)
		require.Equal(t, []HTTPMethod{POST}, methods)
		r1, err := pathToRegex(path)
		require.Nil(t, err)

		require.True(t, r1.MatchString("/api/v1/reviews/123-321/decision"))
		require.False(t, r1.MatchString("/api/v1/reviews/decision"))

		path, methods, err = parseSwaggerPattern("/api/v1/campaigns/{id}/items/{itemID} [get]")
		require.Nil(t, err)
		require.Equal(t, []HTTPMethod{GET}, methods)
		r2, err := pathToRegex(path)
		require.Nil(t, err)

		require.True(t, r2.MatchString("/api/v1/campaigns/123-321/items/qwe-ewr123-wr-12"))
		require.False(t, r2.MatchString("/api/v1/campaigns/we-ewr123-wr-12/items"))
	})

	t.Run(`several methods`, func(t *testing.T) {
		path, methods, err := parseSwaggerPattern(" /api/v1/assets/ [get, POST]")
		require.Nil(t, err)
		require.Equal(t, "/api/v1/assets", path)
		require.Equal(t, []HTTPMethod{GET, POST}, methods)
	})

	t.Run(`invalid patterns`, func(t *testing.T) {
		_, _, err := parseSwaggerPattern("/api/v1/campaigns")
		require.NotNil(t, err)
		_, _, err = parseSwaggerPattern("/api/v1/campaigns [fetch]")
		require.NotNil(t, err)
	})

	t.Run(`normalize path`, func(t *testing.T) {
		require.Equal(t, "/", normalizePath(""))
		require.Equal(t, "/", normalizePath("/"))
		require.Equal(t, "/api/v1/assets", normalizePath("api//v1/assets/"))
	})

	t.Run(`wildcard and fallback`, func(t *testing.T) {
		i := &impl{
			rules:       map[HTTPMethod]*PathRule{},
			permissions: map[models.UserRole]map[models.Module][]models.Permission{},
		}
		require.Nil(t, i.RegisterRule(models.AuditModule, models.ViewPermission, AdminRoleSet, "/api/v1/audit/* [all]", nil))
		require.Nil(t, i.RegisterRule(models.AuditModule, models.ViewPermission, AllRoles, "/api/v1/audit/own [get]", nil))
		require.NotNil(t, i.RegisterRule(models.AuditModule, models.ViewPermission, AllRoles, "/api/v1/audit/own [get]", nil))

		handler, found := i.GetRuleFunc("DELETE", "/api/v1/audit/any/thing")
		require.True(t, found)
		require.False(t, handler("bob@co.com", models.ReviewerRole, ""))

		handler, found = i.GetRuleFunc("GET", "/api/v1/audit/own")
		require.True(t, found)
		require.True(t, handler("bob@co.com", models.ReviewerRole, ""))
	})
}

func TestRules(t *testing.T) {
	NewHandler()

	check := func(method, path string, role models.UserRole) bool {
		handler, found := Instance.GetRuleFunc(method, path)
		require.True(t, found, "%s %s", method, path)
		return handler("someone@co.com", role, path)
	}

	require.True(t, check("POST", "/api/v1/campaigns", models.AdminRole))
	require.False(t, check("POST", "/api/v1/campaigns", models.ReviewerRole))
	require.True(t, check("post", "/api/v1/reviews/abc/decision/", models.ReviewerRole))
	require.True(t, check("GET", "/api/v1/assets/mine", models.ReviewerRole))
	require.False(t, check("GET", "/api/v1/assets/abc/groups", models.ReviewerRole))
	require.False(t, check("PUT", "/api/v1/settings", models.ReviewerRole))

	_, found := Instance.GetRuleFunc("DELETE", "/api/v1/campaigns")
	require.False(t, found)

	permissions := Instance.GetPermissions(models.ReviewerRole)
	require.Equal(t, []models.Permission{models.FlowPermission, models.ViewPermission}, permissions[models.ReviewModule])
	require.NotContains(t, permissions, models.SettingsModule)
	require.Contains(t, Instance.GetPermissions(models.AdminRole), models.SettingsModule)
	require.Empty(t, Instance.GetPermissions("guest"))
}
