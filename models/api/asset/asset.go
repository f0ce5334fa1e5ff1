package assetapimodels

import (
	"iga-backend/models"
	dbmodels "iga-backend/models/db"
	"strings"
)

type AssetData struct {
	Name               string           `json:"name"`
	OwnerEmail         string           `json:"owner_email"`
	LoginType          models.LoginType `json:"login_type"`
	OktaID             string           `json:"okta_id"`
	RbacConsoleURL     string           `json:"rbac_console_url"`
	PrivilegedGroupIDs []string         `json:"privileged_group_ids"`
}

func (a *AssetData) Validate() error {
	a.Name = strings.TrimSpace(a.Name)
	a.OwnerEmail = strings.ToLower(strings.TrimSpace(a.OwnerEmail))
	a.OktaID = strings.TrimSpace(a.OktaID)
	if a.Name == "" {
		return models.ValidationError("asset name is required")
	}
	if a.LoginType == "" {
		a.LoginType = models.LoginTypeSSO
	}
	if !a.LoginType.IsValid() {
		return models.ValidationError("unsupported login type %q", a.LoginType)
	}
	return nil
}

func (a AssetData) ToUpdateMap() map[string]interface{} {
	return map[string]interface{}{
		"name":                 a.Name,
		"owner_email":          nullable(a.OwnerEmail),
		"login_type":           a.LoginType,
		"okta_id":              nullable(a.OktaID),
		"rbac_console_url":     a.RbacConsoleURL,
		"privileged_group_ids": dbmodels.StringList(a.PrivilegedGroupIDs),
	}
}

func (a AssetData) ToModel() dbmodels.Asset {
	return dbmodels.Asset{
		Name:               a.Name,
		OwnerEmail:         nullable(a.OwnerEmail),
		LoginType:          a.LoginType,
		OktaID:             nullable(a.OktaID),
		RbacConsoleURL:     a.RbacConsoleURL,
		PrivilegedGroupIDs: dbmodels.StringList(a.PrivilegedGroupIDs),
	}
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

type AssetGroupView struct {
	GroupID    string   `json:"group_id"`
	GroupName  string   `json:"group_name"`
	Privileged bool     `json:"privileged"`
	Members    []string `json:"members"`
}

type AssetGroupsResult struct {
	AssetID     string           `json:"asset_id"`
	MemberCount int              `json:"member_count"`
	Groups      []AssetGroupView `json:"groups"`
}
