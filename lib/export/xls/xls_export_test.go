package xlsexport

import (
	"bytes"
	"testing"

	"iga-backend/models"
	campaignapimodels "iga-backend/models/api/campaign"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCampaignItems(t *testing.T) {
	revoked := models.DecisionRevoked
	campaign := campaignapimodels.CampaignView{Name: "Q1 Review", TotalItems: 2, PendingItems: 1}
	list := []reviewapimodels.ReviewItemView{
		{AssetName: "GitHub", OktaGroup: "admins", Privileged: true, EmployeeEmail: "user@co.com", ReviewerEmail: "owner@co.com", Status: models.ReviewStatusReviewed, Decision: &revoked},
		{AssetName: "Jira", OktaGroup: "jira-users", EmployeeEmail: "other@co.com", ReviewerEmail: "owner@co.com", Status: models.ReviewStatusPending},
	}
	buf, err := impl{}.ExportCampaignItems(campaign, list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	require.Equal(t, "Q1 Review", name)

	rows, err := f.GetRows(itemsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, itemHeaders[0], rows[0][0])
	require.Equal(t, "Yes", rows[1][3])
	require.Equal(t, "Revoked", rows[1][7])
	require.Equal(t, "pending", rows[2][6])
}
