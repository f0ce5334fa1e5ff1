package assetstore

import (
	"testing"

	"iga-backend/db/testdb"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	dbmodels "iga-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestListWithOktaApp(t *testing.T) {
	store := NewInstance(testdb.New(t))
	create := func(name string, oktaID *string) string {
		id, err := store.Create(dbmodels.Asset{Name: name, LoginType: models.LoginTypeSSO, OktaID: oktaID})
		require.Nil(t, err)
		return id
	}
	linked := create("GitHub", helpers.StrPtr("app1"))
	create("Jira", nil)
	create("Wiki", helpers.StrPtr(""))
	blank := create("Vault", helpers.StrPtr("   "))

	list, err := store.ListWithOktaApp(nil)
	require.Nil(t, err)
	require.Len(t, list, 1)
	require.Equal(t, linked, list[0].ID)
	for _, rec := range list {
		require.True(t, rec.HasOktaApp())
	}

	list, err = store.ListWithOktaApp([]string{blank})
	require.Nil(t, err)
	require.Empty(t, list)
}
