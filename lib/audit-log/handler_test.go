package auditloghandler

import (
	"testing"

	"iga-backend/db/testdb"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWriteAndList(t *testing.T) {
	DB := testdb.New(t)
	handler := NewInstance(DB)

	require.Nil(t, handler.Write(auditapimodels.AuditEntry{
		ActorEmail: " Bob@Co.com ",
		Action:     string(models.AuditReviewItemDecision),
		TargetUser: "User@Co.com",
		AssetName:  "GitHub",
		Decision:   helpers.StrPtr("Approved"),
		Metadata:   map[string]any{"review_item_id": "item-1"},
	}))
	require.Nil(t, handler.Write(auditapimodels.AuditEntry{
		ActorEmail: models.SystemActor,
		Action:     string(models.AuditOktaRevokeAccess),
		TargetUser: "user@co.com",
	}))

	list, rowCount, err := handler.List(auditapimodels.AuditLogFilter{ActorEmail: "bob@co.com"})
	require.Nil(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Equal(t, "bob@co.com", list[0].ActorEmail)
	require.Equal(t, "user@co.com", list[0].TargetUser)
	require.Equal(t, "Approved", helpers.PtrValue(list[0].Decision))
	require.Equal(t, "item-1", list[0].Metadata["review_item_id"])

	list, rowCount, err = handler.List(auditapimodels.AuditLogFilter{Action: string(models.AuditOktaRevokeAccess)})
	require.Nil(t, err)
	require.EqualValues(t, 1, rowCount)
	require.Equal(t, models.SystemActor, list[0].ActorEmail)
	require.NotNil(t, list[0].Metadata)
}

func TestFilterValidate(t *testing.T) {
	filter := auditapimodels.AuditLogFilter{DateFrom: "2024-01-01", DateTo: "2024-01-31"}
	require.Nil(t, filter.Validate())
	require.Equal(t, "2024-01-01", filter.From.Format(helpers.DateLayout))
	require.Equal(t, "2024-02-01", filter.To.Format(helpers.DateLayout))

	filter = auditapimodels.AuditLogFilter{DateFrom: "2024-02-01", DateTo: "2024-01-01"}
	require.True(t, errors.Is(filter.Validate(), models.ErrValidation))

	filter = auditapimodels.AuditLogFilter{DateTo: "yesterday"}
	require.True(t, errors.Is(filter.Validate(), models.ErrValidation))
}
