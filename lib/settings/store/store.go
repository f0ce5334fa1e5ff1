package settingsstore

import (
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	// Get returns the singleton row, or an empty row when it was never saved.
	Get() (*dbmodels.SystemSettings, error)
	EnsureExists() error
	Update(updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get() (*dbmodels.SystemSettings, error) {
	rec := dbmodels.SystemSettings{}
	err := i.db.
		Where("id = ?", dbmodels.SystemSettingsID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dbmodels.SystemSettings{ID: dbmodels.SystemSettingsID}, nil
		}
		return nil, errors.Wrap(err, "system settings load")
	}
	return &rec, nil
}

func (i impl) EnsureExists() error {
	rec := dbmodels.SystemSettings{ID: dbmodels.SystemSettingsID}
	err := i.db.
		Where("id = ?", dbmodels.SystemSettingsID).
		FirstOrCreate(&rec).
		Error
	if err != nil {
		return errors.Wrap(err, "system settings bootstrap")
	}
	return nil
}

func (i impl) Update(updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	if err := i.EnsureExists(); err != nil {
		return err
	}
	err := i.db.
		Model(&dbmodels.SystemSettings{}).
		Where("id = ?", dbmodels.SystemSettingsID).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "system settings update")
	}
	return nil
}
