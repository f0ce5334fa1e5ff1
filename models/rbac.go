package models

type RbacFunc func(email string, role UserRole, path string) bool

type Module string

const (
	CampaignModule  Module = "CAMPAIGN"
	ReviewModule    Module = "REVIEW"
	DirectoryModule Module = "DIRECTORY"
	AssetModule     Module = "ASSET"
	AuditModule     Module = "AUDIT"
	SettingsModule  Module = "SETTINGS"
	NotifyModule    Module = "NOTIFY"
)

type Permission string

const (
	CreatePermission Permission = "CREATE"
	EditPermission   Permission = "EDIT"
	ViewPermission   Permission = "VIEW"
	ManagePermission Permission = "MANAGE"
	FlowPermission   Permission = "FLOW"
)
