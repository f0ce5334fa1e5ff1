package db

import (
	settingsstore "iga-backend/lib/settings/store"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	addSystemSettings()
}

// addSystemSettings creates the singleton settings row on first start.
func addSystemSettings() {
	if err := settingsstore.NewInstance(DB).EnsureExists(); err != nil {
		log.WithError(err).Error("system settings row not created")
	}
}
