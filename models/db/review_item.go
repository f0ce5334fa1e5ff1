package dbmodels

import (
	"iga-backend/models"
	"time"
)

type ReviewItem struct {
	BaseModel
	CampaignID    string                 `gorm:"type:varchar(36);index;not null" json:"campaign_id"`
	AssetID       string                 `gorm:"type:varchar(36);index;not null" json:"asset_id"`
	Asset         *Asset                 `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	EmployeeEmail string                 `gorm:"type:varchar(320);index" json:"employee_email"`
	ReviewerEmail string                 `gorm:"type:varchar(320);index" json:"reviewer_email"`
	Status        models.ReviewStatus    `gorm:"type:varchar(20);index;not null;default:'pending'" json:"status"`
	Decision      *models.ReviewDecision `gorm:"type:varchar(20)" json:"decision"`
	EvidenceNotes string                 `gorm:"type:text" json:"evidence_notes"`
	OktaGroup     string                 `gorm:"type:varchar(255)" json:"okta_group"`
	OktaGroupID   string                 `gorm:"type:varchar(100)" json:"okta_group_id"`
	DecidedBy     *string                `gorm:"type:varchar(320)" json:"decided_by"`
	DecidedAt     *time.Time             `json:"decided_at"`
}

func (r ReviewItem) IsPending() bool {
	return r.Status == models.ReviewStatusPending
}

type ReviewerPending struct {
	ReviewerEmail string
	CampaignID    string
	Pending       int64
}
