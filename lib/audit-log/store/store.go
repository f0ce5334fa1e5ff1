package auditlogstore

import (
	auditapimodels "iga-backend/models/api/audit"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider has no update or delete, entries are append-only.
type Provider interface {
	Create(rec dbmodels.AuditLog) (id string, err error)
	List(filter auditapimodels.AuditLogFilter) (list []dbmodels.AuditLog, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AuditLog) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "audit log insert")
	}
	return rec.ID, nil
}

func (i impl) List(filter auditapimodels.AuditLogFilter) (list []dbmodels.AuditLog, rowCount int64, err error) {
	list = []dbmodels.AuditLog{}
	page, limit := filter.GetPage()
	tx := i.db.Model(&dbmodels.AuditLog{})
	if filter.Action != "" {
		tx = tx.Where("action = ?", filter.Action)
	}
	if filter.ActorEmail != "" {
		tx = tx.Where("lower(actor_email) = lower(?)", filter.ActorEmail)
	}
	if filter.TargetUser != "" {
		tx = tx.Where("lower(target_user) = lower(?)", filter.TargetUser)
	}
	if filter.From != nil {
		tx = tx.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		tx = tx.Where("created_at < ?", *filter.To)
	}
	tx = tx.Session(&gorm.Session{})
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
