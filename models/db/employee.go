package dbmodels

import (
	"iga-backend/models"
	"time"
)

type Employee struct {
	BaseModel
	Email      string            `gorm:"type:varchar(320);not null;uniqueIndex" json:"email"`
	FullName   string            `gorm:"type:varchar(255)" json:"full_name"`
	Role       string            `gorm:"type:varchar(255)" json:"role"`
	Department string            `gorm:"type:varchar(255)" json:"department"`
	Manager    string            `gorm:"type:varchar(255)" json:"manager"`
	Status     string            `gorm:"type:varchar(100)" json:"status"`
	WorkerType models.WorkerType `gorm:"type:varchar(20);index" json:"worker_type"`
	SlackID    *string           `gorm:"type:varchar(50)" json:"slack_id"`
	HireDate   *time.Time        `gorm:"type:date" json:"hire_date"`
	EndDate    *time.Time        `gorm:"type:date" json:"end_date"`
}
