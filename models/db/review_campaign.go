package dbmodels

import (
	"iga-backend/models"
	"time"
)

type ReviewCampaign struct {
	BaseModel
	Name      string                `gorm:"type:varchar(255);not null" json:"name"`
	StartDate time.Time             `gorm:"type:date" json:"start_date"`
	DueDate   time.Time             `gorm:"type:date" json:"due_date"`
	Status    models.CampaignStatus `gorm:"type:varchar(20);index" json:"status"`
	Scope     models.CampaignScope  `gorm:"type:varchar(30)" json:"scope"`
	CreatedBy string                `gorm:"type:varchar(320)" json:"created_by"`
}

type CampaignStats struct {
	CampaignID string
	Total      int64
	Pending    int64
}
