// Package testdb opens throwaway SQLite databases with the production schema.
package testdb

import (
	"fmt"
	"testing"

	dbmodels "iga-backend/models/db"

	"github.com/google/uuid"
	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New returns a migrated in-memory database private to the test. A single
// connection is used so transactions behave like on a real server.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	require.Nil(t, err)
	sqlDB, err := db.DB()
	require.Nil(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	require.Nil(t, db.AutoMigrate(dbmodels.AllModels()...))
	require.Nil(t, db.FirstOrCreate(&dbmodels.SystemSettings{ID: dbmodels.SystemSettingsID}).Error)
	return db
}
