package rbac

import (
	"iga-backend/models"
)

var (
	AdminRoleSet = []models.UserRole{models.AdminRole}
	AllRoles     = []models.UserRole{models.AdminRole, models.ReviewerRole}
)

func (i *impl) initRules() {
	i.campaign()
	i.review()
	i.directory()
	i.asset()
	i.audit()
	i.settings()
	i.notify()
}

func (i *impl) mustRegister(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) {
	if err := i.RegisterRule(module, permission, roles, swaggerPattern, handler); err != nil {
		panic(err.Error())
	}
}

func (i *impl) campaign() {
	// VIEW
	i.mustRegister(models.CampaignModule, models.ViewPermission, AllRoles, "/api/v1/campaigns [get]", nil)
	i.mustRegister(models.CampaignModule, models.ViewPermission, AllRoles, "/api/v1/campaigns/{id} [get]", nil)
	i.mustRegister(models.CampaignModule, models.ViewPermission, AdminRoleSet, "/api/v1/campaigns/{id}/items [get]", nil)
	i.mustRegister(models.CampaignModule, models.ViewPermission, AdminRoleSet, "/api/v1/campaigns/{id}/export [get]", nil)
	// CREATE
	i.mustRegister(models.CampaignModule, models.CreatePermission, AdminRoleSet, "/api/v1/campaigns [post]", nil)
}

func (i *impl) review() {
	// VIEW
	i.mustRegister(models.ReviewModule, models.ViewPermission, AllRoles, "/api/v1/reviews/pending [get]", nil)
	i.mustRegister(models.ReviewModule, models.ViewPermission, AllRoles, "/api/v1/reviews/history [get]", nil)
	// FLOW, ownership of the item is checked by the decision processor
	i.mustRegister(models.ReviewModule, models.FlowPermission, AllRoles, "/api/v1/reviews/{id}/decision [post]", nil)
	i.mustRegister(models.ReviewModule, models.FlowPermission, AllRoles, "/api/v1/reviews/delegate [post]", nil)
}

func (i *impl) directory() {
	// VIEW
	i.mustRegister(models.DirectoryModule, models.ViewPermission, AllRoles, "/api/v1/employees [get]", nil)
	// MANAGE
	i.mustRegister(models.DirectoryModule, models.ManagePermission, AdminRoleSet, "/api/v1/directory/employees/sync [post]", nil)
	i.mustRegister(models.DirectoryModule, models.ManagePermission, AdminRoleSet, "/api/v1/directory/slack/sync [post]", nil)
}

func (i *impl) asset() {
	// VIEW
	i.mustRegister(models.AssetModule, models.ViewPermission, AllRoles, "/api/v1/assets [get]", nil)
	i.mustRegister(models.AssetModule, models.ViewPermission, AllRoles, "/api/v1/assets/mine [get]", nil)
	i.mustRegister(models.AssetModule, models.ViewPermission, AdminRoleSet, "/api/v1/assets/{id}/groups [get]", nil)
	// CREATE/EDIT
	i.mustRegister(models.AssetModule, models.CreatePermission, AdminRoleSet, "/api/v1/assets [post]", nil)
	i.mustRegister(models.AssetModule, models.EditPermission, AdminRoleSet, "/api/v1/assets/{id} [put]", nil)
}

func (i *impl) audit() {
	i.mustRegister(models.AuditModule, models.ViewPermission, AdminRoleSet, "/api/v1/audit_logs [get]", nil)
}

func (i *impl) settings() {
	i.mustRegister(models.SettingsModule, models.ViewPermission, AdminRoleSet, "/api/v1/settings [get]", nil)
	i.mustRegister(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/settings [put]", nil)
	i.mustRegister(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/settings/test/okta [post]", nil)
	i.mustRegister(models.SettingsModule, models.ManagePermission, AdminRoleSet, "/api/v1/settings/test/bamboohr [post]", nil)
}

func (i *impl) notify() {
	i.mustRegister(models.NotifyModule, models.CreatePermission, AdminRoleSet, "/api/v1/notifications/slack [post]", nil)
}
