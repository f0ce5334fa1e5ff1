package assethandler

import (
	"context"
	"testing"

	"iga-backend/db/testdb"
	"iga-backend/lib/external-services/okta/oktaclient/oktatest"
	"iga-backend/models"
	assetapimodels "iga-backend/models/api/asset"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAssetCRUD(t *testing.T) {
	DB := testdb.New(t)
	handler := NewInstance(DB, oktatest.New().Factory())

	id, err := handler.Create(assetapimodels.AssetData{Name: " GitHub ", OwnerEmail: "Bob@Co.com", OktaID: "app1"})
	require.Nil(t, err)
	rec, err := handler.Get(id)
	require.Nil(t, err)
	require.Equal(t, "GitHub", rec.Name)
	require.Equal(t, "bob@co.com", rec.ReviewerEmail())
	require.Equal(t, models.LoginTypeSSO, rec.LoginType)

	_, err = handler.Create(assetapimodels.AssetData{Name: "Jira", LoginType: models.LoginTypeLocal})
	require.Nil(t, err)

	mine, err := handler.Mine("BOB@co.com")
	require.Nil(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, id, mine[0].ID)

	err = handler.Update(id, assetapimodels.AssetData{Name: "GitHub", LoginType: models.LoginTypeSWA, PrivilegedGroupIDs: []string{"g1"}})
	require.Nil(t, err)
	rec, err = handler.Get(id)
	require.Nil(t, err)
	require.Nil(t, rec.OwnerEmail)
	require.Equal(t, models.LoginTypeSWA, rec.LoginType)
	require.Equal(t, dbmodels.StringList{"g1"}, rec.PrivilegedGroupIDs)

	list, err := handler.List()
	require.Nil(t, err)
	require.Len(t, list, 2)

	t.Run(`validation`, func(t *testing.T) {
		_, err := handler.Create(assetapimodels.AssetData{Name: " "})
		require.True(t, errors.Is(err, models.ErrValidation))
		_, err = handler.Create(assetapimodels.AssetData{Name: "x", LoginType: "Kerberos"})
		require.True(t, errors.Is(err, models.ErrValidation))
		_, err = handler.Mine(" ")
		require.True(t, errors.Is(err, models.ErrValidation))
	})

	t.Run(`not found`, func(t *testing.T) {
		_, err := handler.Get("missing")
		require.True(t, errors.Is(err, models.ErrNotFound))
		err = handler.Update("missing", assetapimodels.AssetData{Name: "x"})
		require.True(t, errors.Is(err, models.ErrNotFound))
	})
}

func TestGroups(t *testing.T) {
	ctx := context.Background()
	DB := testdb.New(t)
	okta := oktatest.New()
	okta.AddGroup("app1", "g1", "admins", "A@co.com", "b@co.com")
	okta.AddGroup("app1", "g2", "users", "b@co.com", "c@co.com")
	handler := NewInstance(DB, okta.Factory())

	id, err := handler.Create(assetapimodels.AssetData{Name: "GitHub", OktaID: "app1", PrivilegedGroupIDs: []string{"g1"}})
	require.Nil(t, err)
	localID, err := handler.Create(assetapimodels.AssetData{Name: "Jira", LoginType: models.LoginTypeLocal})
	require.Nil(t, err)

	_, err = handler.Groups(ctx, id)
	require.True(t, errors.Is(err, models.ErrConfiguration))

	require.Nil(t, DB.Model(&dbmodels.SystemSettings{}).Where("id = ?", dbmodels.SystemSettingsID).
		Updates(map[string]interface{}{"okta_domain": "acme.okta.com", "okta_api_token": "t"}).Error)

	result, err := handler.Groups(ctx, id)
	require.Nil(t, err)
	require.Equal(t, 3, result.MemberCount)
	require.Len(t, result.Groups, 2)
	require.Equal(t, []string{"a@co.com", "b@co.com"}, result.Groups[0].Members)
	require.True(t, result.Groups[0].Privileged)
	require.False(t, result.Groups[1].Privileged)

	rec, err := handler.Get(id)
	require.Nil(t, err)
	require.Equal(t, 3, rec.MemberCount)

	_, err = handler.Groups(ctx, localID)
	require.True(t, errors.Is(err, models.ErrValidation))

	okta.Err = oktatest.UnavailableError()
	_, err = handler.Groups(ctx, id)
	require.True(t, errors.Is(err, models.ErrUpstream))
}
