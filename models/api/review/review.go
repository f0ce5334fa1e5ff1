package reviewapimodels

import (
	"iga-backend/models"
	apimodels "iga-backend/models/api"
	dbmodels "iga-backend/models/db"
	"strings"
	"time"
)

type DecisionRequest struct {
	Decision      models.ReviewDecision `json:"decision"`
	EvidenceNotes string                `json:"evidence_notes"`
}

type DecisionData struct {
	ReviewItemID  string
	Decision      models.ReviewDecision
	ActorEmail    string
	// administrators may decide items assigned to any reviewer
	ActorRole     models.UserRole
	EvidenceNotes string
}

func (d *DecisionData) Validate() error {
	d.ReviewItemID = strings.TrimSpace(d.ReviewItemID)
	d.ActorEmail = strings.TrimSpace(d.ActorEmail)
	if d.ReviewItemID == "" {
		return models.ValidationError("review item id is required")
	}
	if d.ActorEmail == "" {
		return models.ValidationError("actor email is required")
	}
	if d.Decision == "" {
		return models.ValidationError("decision is required")
	}
	if !d.Decision.IsValid() {
		return models.ValidationError("unsupported decision %q", d.Decision)
	}
	return nil
}

type DecisionResult struct {
	ReviewItemID string                    `json:"review_item_id"`
	Decision     models.ReviewDecision     `json:"decision"`
	Revocation   *models.RevocationOutcome `json:"revocation,omitempty"`
	Warning      string                    `json:"warning,omitempty"`
}

type DelegationRequest struct {
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
}

func (d *DelegationRequest) Validate() error {
	d.FromEmail = strings.ToLower(strings.TrimSpace(d.FromEmail))
	d.ToEmail = strings.ToLower(strings.TrimSpace(d.ToEmail))
	if d.FromEmail == "" || d.ToEmail == "" {
		return models.ValidationError("both from_email and to_email are required")
	}
	return nil
}

type DelegationResult struct {
	Reassigned int64 `json:"reassigned"`
}

type ReviewerFilter struct {
	apimodels.Pagination
	Reviewer   string `query:"reviewer"`
	CampaignID string `query:"campaign_id"`
}

type ReviewItemView struct {
	ID            string                 `json:"id"`
	CampaignID    string                 `json:"campaign_id"`
	AssetID       string                 `json:"asset_id"`
	AssetName     string                 `json:"asset_name"`
	LoginType     models.LoginType       `json:"login_type"`
	EmployeeEmail string                 `json:"employee_email"`
	ReviewerEmail string                 `json:"reviewer_email"`
	Status        models.ReviewStatus    `json:"status"`
	Decision      *models.ReviewDecision `json:"decision"`
	EvidenceNotes string                 `json:"evidence_notes"`
	OktaGroup     string                 `json:"okta_group"`
	OktaGroupID   string                 `json:"okta_group_id"`
	Privileged    bool                   `json:"privileged"`
	DecidedBy     *string                `json:"decided_by"`
	DecidedAt     *time.Time             `json:"decided_at"`
	CreatedAt     time.Time              `json:"created_at"`
}

func ReviewItemConvert(rec dbmodels.ReviewItem) ReviewItemView {
	view := ReviewItemView{
		ID:            rec.ID,
		CampaignID:    rec.CampaignID,
		AssetID:       rec.AssetID,
		EmployeeEmail: rec.EmployeeEmail,
		ReviewerEmail: rec.ReviewerEmail,
		Status:        rec.Status,
		Decision:      rec.Decision,
		EvidenceNotes: rec.EvidenceNotes,
		OktaGroup:     rec.OktaGroup,
		OktaGroupID:   rec.OktaGroupID,
		DecidedBy:     rec.DecidedBy,
		DecidedAt:     rec.DecidedAt,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.Asset != nil {
		view.AssetName = rec.Asset.Name
		view.LoginType = rec.Asset.LoginType
		view.Privileged = rec.Asset.PrivilegedGroupIDs.Contains(rec.OktaGroupID)
	}
	return view
}

// RevocationRequest removes the reviewed person from the group that granted access.
type RevocationRequest struct {
	ReviewItemID  string
	GroupID       string
	EmployeeEmail string
	AssetName     string
}
