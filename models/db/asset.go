package dbmodels

import (
	"iga-backend/models"
	"strings"
)

type Asset struct {
	BaseModel
	Name               string           `gorm:"type:varchar(255);not null" json:"name"`
	OwnerEmail         *string          `gorm:"type:varchar(320);index" json:"owner_email"`
	LoginType          models.LoginType `gorm:"type:varchar(20);not null;default:'SSO'" json:"login_type"`
	OktaID             *string          `gorm:"type:varchar(100);index" json:"okta_id"`
	RbacConsoleURL     string           `gorm:"type:varchar(500)" json:"rbac_console_url"`
	PrivilegedGroupIDs StringList       `json:"privileged_group_ids"`
	MemberCount        int              `gorm:"not null;default:0" json:"member_count"`
}

// ReviewerEmail returns the normalized owner e-mail, empty when the asset has no owner.
func (a Asset) ReviewerEmail() string {
	if a.OwnerEmail == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*a.OwnerEmail))
}

func (a Asset) HasOktaApp() bool {
	return a.OktaID != nil && strings.TrimSpace(*a.OktaID) != ""
}
