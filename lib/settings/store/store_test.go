package settingsstore

import (
	"testing"

	"iga-backend/db/testdb"
	dbmodels "iga-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestSettingsStore(t *testing.T) {
	db := testdb.New(t)
	store := NewInstance(db)

	rec, err := store.Get()
	require.Nil(t, err)
	require.Equal(t, dbmodels.SystemSettingsID, rec.ID)
	require.False(t, rec.HasOkta())

	require.Nil(t, store.Update(map[string]interface{}{
		"okta_domain":    "acme.okta.com",
		"okta_api_token": "secret",
		"nhi_types":      dbmodels.StringList{"service", "bot"},
	}))
	require.Nil(t, store.EnsureExists())

	rec, err = store.Get()
	require.Nil(t, err)
	require.True(t, rec.HasOkta())
	require.Equal(t, dbmodels.StringList{"service", "bot"}, rec.NhiTypes)

	var count int64
	require.Nil(t, db.Model(&dbmodels.SystemSettings{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
