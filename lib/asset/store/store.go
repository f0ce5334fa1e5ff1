package assetstore

import (
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Asset) (id string, err error)
	GetByID(id string) (rec *dbmodels.Asset, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.Asset, err error)
	ListByOwner(email string) (list []dbmodels.Asset, err error)
	// ListWithOktaApp returns assets linked to an Okta app; empty ids means all of them.
	ListWithOktaApp(ids []string) (list []dbmodels.Asset, err error)
	SetMemberCount(id string, count int) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Asset) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Asset, error) {
	rec := dbmodels.Asset{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Asset{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.Asset, err error) {
	list = []dbmodels.Asset{}
	err = i.db.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByOwner(email string) (list []dbmodels.Asset, err error) {
	list = []dbmodels.Asset{}
	err = i.db.
		Where("lower(owner_email) = lower(?)", email).
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListWithOktaApp(ids []string) (list []dbmodels.Asset, err error) {
	list = []dbmodels.Asset{}
	tx := i.db.
		Where("okta_id IS NOT NULL").
		Where("trim(okta_id) <> ''")
	if len(ids) != 0 {
		tx = tx.Where("id IN ?", ids)
	}
	err = tx.
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) SetMemberCount(id string, count int) error {
	return i.Update(id, map[string]interface{}{"member_count": count})
}
