package dbmodels

// AllModels lists every table in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&SystemSettings{},
		&Asset{},
		&Employee{},
		&ReviewCampaign{},
		&ReviewItem{},
		&AuditLog{},
	}
}
