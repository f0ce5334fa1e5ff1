package dbmodels

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrAuditLogImmutable = errors.New("audit log entries are append-only")

type AuditLog struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	ActorEmail string    `gorm:"type:varchar(320);index" json:"actor_email"`
	Action     string    `gorm:"type:varchar(100);index" json:"action"`
	TargetUser string    `gorm:"type:varchar(320)" json:"target_user"`
	AssetName  string    `gorm:"type:varchar(255)" json:"asset_name"`
	Decision   *string   `gorm:"type:varchar(20)" json:"decision"`
	Metadata   JSONMap   `json:"metadata"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrAuditLogImmutable
}

func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return ErrAuditLogImmutable
}
