package auditapimodels

import (
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	apimodels "iga-backend/models/api"
	dbmodels "iga-backend/models/db"
	"time"
)

type AuditLogFilter struct {
	apimodels.Pagination
	Action     string     `query:"action"`
	ActorEmail string     `query:"actor_email"`
	TargetUser string     `query:"target_user"`
	DateFrom   string     `query:"date_from"` // YYYY-MM-DD, inclusive
	DateTo     string     `query:"date_to"`   // YYYY-MM-DD, inclusive
	From       *time.Time `query:"-"`
	To         *time.Time `query:"-"`
}

// Validate resolves the date bounds into the From/To range.
func (f *AuditLogFilter) Validate() error {
	if f.DateFrom != "" {
		from, err := helpers.ParseDate(f.DateFrom)
		if err != nil {
			return models.ValidationError("date_from must be a valid date")
		}
		f.From = &from
	}
	if f.DateTo != "" {
		to, err := helpers.ParseDate(f.DateTo)
		if err != nil {
			return models.ValidationError("date_to must be a valid date")
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return models.ValidationError("date_from must not be after date_to")
	}
	return nil
}

type AuditEntry struct {
	ActorEmail string
	Action     string
	TargetUser string
	AssetName  string
	Decision   *string
	Metadata   map[string]any
}

type AuditLogView struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	ActorEmail string         `json:"actor_email"`
	Action     string         `json:"action"`
	TargetUser string         `json:"target_user"`
	AssetName  string         `json:"asset_name"`
	Decision   *string        `json:"decision"`
	Metadata   map[string]any `json:"metadata"`
}

func AuditLogConvert(rec dbmodels.AuditLog) AuditLogView {
	metadata := map[string]any(rec.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	return AuditLogView{
		ID:         rec.ID,
		CreatedAt:  rec.CreatedAt,
		ActorEmail: rec.ActorEmail,
		Action:     rec.Action,
		TargetUser: rec.TargetUser,
		AssetName:  rec.AssetName,
		Decision:   rec.Decision,
		Metadata:   metadata,
	}
}
