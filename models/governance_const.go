package models

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusReviewed ReviewStatus = "reviewed"
)

type ReviewDecision string

const (
	DecisionApproved ReviewDecision = "Approved"
	DecisionRevoked  ReviewDecision = "Revoked"
)

func (d ReviewDecision) IsValid() bool {
	return d == DecisionApproved || d == DecisionRevoked
}

func (d ReviewDecision) IsApproval() bool {
	return d == DecisionApproved
}

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
)

type CampaignScope string

const (
	ScopeAllAssets      CampaignScope = "all_assets"
	ScopeSelectedAssets CampaignScope = "selected_assets"
)

func (s CampaignScope) IsValid() bool {
	return s == ScopeAllAssets || s == ScopeSelectedAssets
}

type LoginType string

const (
	LoginTypeSSO   LoginType = "SSO"
	LoginTypeLocal LoginType = "Local"
	LoginTypeSWA   LoginType = "SWA"
	LoginTypeEmpty LoginType = "Empty"
)

// IsFederated reports whether access is brokered by the identity provider.
func (t LoginType) IsFederated() bool {
	return t == LoginTypeSSO
}

func (t LoginType) IsValid() bool {
	switch t {
	case LoginTypeSSO, LoginTypeLocal, LoginTypeSWA, LoginTypeEmpty:
		return true
	}
	return false
}

type WorkerType string

const (
	WorkerEmployee   WorkerType = "Employee"
	WorkerContractor WorkerType = "Contractor"
)

type SyncTarget string

const (
	SyncEmployees   SyncTarget = "employees"
	SyncContractors SyncTarget = "contractors"
	SyncAll         SyncTarget = "all"
)

func (t SyncTarget) IsValid() bool {
	return t == SyncEmployees || t == SyncContractors || t == SyncAll
}

// WorkerTypes returns the worker types mirrored by a sync of the target.
func (t SyncTarget) WorkerTypes() []WorkerType {
	switch t {
	case SyncEmployees:
		return []WorkerType{WorkerEmployee}
	case SyncContractors:
		return []WorkerType{WorkerContractor}
	case SyncAll:
		return []WorkerType{WorkerEmployee, WorkerContractor}
	}
	return nil
}

type AuditAction string

const (
	AuditReviewItemDecision    AuditAction = "review_item_decision"
	AuditReviewDelegation      AuditAction = "review_delegation"
	AuditOktaRevokeAccess      AuditAction = "okta_revoke_access"
	AuditReviewCampaignCreated AuditAction = "review_campaign_created"
	AuditEmployeesSync         AuditAction = "bamboohr_employees_sync"
	AuditSlackIDSync           AuditAction = "slack_id_sync"
	AuditSettingsUpdated       AuditAction = "system_settings_updated"
)

type RevocationOutcome string

const (
	RevocationSkipped      RevocationOutcome = "skipped"
	RevocationRevoked      RevocationOutcome = "revoked"
	RevocationUserNotFound RevocationOutcome = "user_not_found"
	RevocationFailed       RevocationOutcome = "failed"
)

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)
