package campaignapimodels

import (
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	apimodels "iga-backend/models/api"
	dbmodels "iga-backend/models/db"
	"strings"
	"time"
)

type CampaignCreateData struct {
	Name      string               `json:"name"`
	StartDate string               `json:"start_date"`
	DueDate   string               `json:"due_date"`
	Scope     models.CampaignScope `json:"scope"`
	AssetIDs  []string             `json:"asset_ids"`
}

// Validate normalizes the request in place and reports the first problem found.
func (c *CampaignCreateData) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.ValidationError("campaign name is required")
	}
	start, err := helpers.ParseDate(c.StartDate)
	if err != nil {
		return models.ValidationError("invalid start_date %q", c.StartDate)
	}
	due, err := helpers.ParseDate(c.DueDate)
	if err != nil {
		return models.ValidationError("invalid due_date %q", c.DueDate)
	}
	if due.Before(start) {
		return models.ValidationError("due_date must not precede start_date")
	}
	if c.Scope == "" {
		c.Scope = models.ScopeAllAssets
	}
	if !c.Scope.IsValid() {
		return models.ValidationError("unsupported scope %q", c.Scope)
	}
	if c.Scope == models.ScopeSelectedAssets {
		ids := make([]string, 0, len(c.AssetIDs))
		for _, id := range c.AssetIDs {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return models.ValidationError("asset_ids are required for selected_assets scope")
		}
		c.AssetIDs = ids
	}
	return nil
}

func (c CampaignCreateData) Dates() (start, due time.Time) {
	start, _ = helpers.ParseDate(c.StartDate)
	due, _ = helpers.ParseDate(c.DueDate)
	return start, due
}

type CampaignResult struct {
	CampaignID         string `json:"campaign_id"`
	ProcessedAssets    int    `json:"processed_assets"`
	CreatedReviewItems int    `json:"created_review_items"`
}

type CampaignView struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	StartDate    string                `json:"start_date"`
	DueDate      string                `json:"due_date"`
	Status       models.CampaignStatus `json:"status"`
	Scope        models.CampaignScope  `json:"scope"`
	CreatedBy    string                `json:"created_by"`
	CreatedAt    time.Time             `json:"created_at"`
	TotalItems   int64                 `json:"total_items"`
	PendingItems int64                 `json:"pending_items"`
}

func CampaignConvert(rec dbmodels.ReviewCampaign, stats dbmodels.CampaignStats) CampaignView {
	return CampaignView{
		ID:           rec.ID,
		Name:         rec.Name,
		StartDate:    rec.StartDate.Format(helpers.DateLayout),
		DueDate:      rec.DueDate.Format(helpers.DateLayout),
		Status:       rec.Status,
		Scope:        rec.Scope,
		CreatedBy:    rec.CreatedBy,
		CreatedAt:    rec.CreatedAt,
		TotalItems:   stats.Total,
		PendingItems: stats.Pending,
	}
}

type CampaignFilter struct {
	apimodels.Pagination
	Status models.CampaignStatus `query:"status"`
}

type ExportRequest struct {
	Format models.ExportFormat `query:"format"`
	Upload bool                `query:"upload"`
}

func (e *ExportRequest) Validate() error {
	if e.Format == "" {
		e.Format = models.ExportXLSX
	}
	if e.Format != models.ExportXLSX && e.Format != models.ExportPDF {
		return models.ValidationError("unsupported export format %q", e.Format)
	}
	return nil
}

type ExportResult struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"-"`
	Body        []byte `json:"-"`
	URL         string `json:"url,omitempty"`
}
