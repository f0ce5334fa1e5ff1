package db

import (
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	for _, model := range dbmodels.AllModels() {
		if err := DB.AutoMigrate(model); err != nil {
			return errors.Wrapf(err, "migration of %T failed", model)
		}
	}
	log.Info("migrations done")
	return nil
}
