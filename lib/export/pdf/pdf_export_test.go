package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"iga-backend/models"
	campaignapimodels "iga-backend/models/api/campaign"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/stretchr/testify/require"
)

func TestGenerateAttestation(t *testing.T) {
	approved := models.DecisionApproved
	decidedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	campaign := campaignapimodels.CampaignView{
		Name:         "Q1 Review",
		StartDate:    "2024-01-01",
		DueDate:      "2024-01-31",
		Status:       models.CampaignActive,
		TotalItems:   2,
		PendingItems: 1,
	}
	list := []reviewapimodels.ReviewItemView{
		{AssetName: "GitHub", OktaGroup: "engineering", EmployeeEmail: "user@co.com", ReviewerEmail: "owner@co.com", Status: models.ReviewStatusReviewed, Decision: &approved, DecidedAt: &decidedAt},
		{AssetName: "A very long asset name that will not fit in the column", OktaGroup: "ops", EmployeeEmail: "other@co.com", ReviewerEmail: "owner@co.com", Status: models.ReviewStatusPending},
	}
	for n := 0; n < 60; n++ {
		list = append(list, list[1])
	}
	body, err := GenerateAttestation(campaign, list, time.Now())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}
