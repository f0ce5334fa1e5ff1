package revocationhandler

import (
	"context"
	"strings"

	"iga-backend/db"
	auditloghandler "iga-backend/lib/audit-log"
	"iga-backend/lib/external-services/okta/oktaclient"
	"iga-backend/lib/metrics"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Provider removes a person from an identity-provider group after a revoke
// decision. Every call leaves exactly one okta_revoke_access audit entry.
type Provider interface {
	Revoke(ctx context.Context, req reviewapimodels.RevocationRequest) (models.RevocationOutcome, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, oktaclient.DefaultFactory)
}

func NewInstance(DB *gorm.DB, oktaFactory oktaclient.Factory) Provider {
	return impl{
		settingsStore: settingsstore.NewInstance(DB),
		auditHandler:  auditloghandler.NewInstance(DB),
		oktaFactory:   oktaFactory,
	}
}

type impl struct {
	settingsStore settingsstore.Provider
	auditHandler  auditloghandler.Provider
	oktaFactory   oktaclient.Factory
}

func (i impl) Revoke(ctx context.Context, req reviewapimodels.RevocationRequest) (outcome models.RevocationOutcome, err error) {
	logger := log.
		WithField("review_item_id", req.ReviewItemID).
		WithField("group_id", req.GroupID).
		WithField("employee_email", req.EmployeeEmail)

	outcome, revokeErr := i.revoke(ctx, req)
	metrics.ObserveRevocation(string(outcome))

	metadata := map[string]any{
		"review_item_id": req.ReviewItemID,
		"group_id":       req.GroupID,
		"outcome":        string(outcome),
	}
	if revokeErr != nil {
		metadata["error"] = revokeErr.Error()
		logger.WithError(revokeErr).Warn("okta access revocation failed")
	} else {
		logger.WithField("outcome", outcome).Info("okta access revocation processed")
	}
	err = i.auditHandler.Write(auditapimodels.AuditEntry{
		ActorEmail: models.SystemActor,
		Action:     string(models.AuditOktaRevokeAccess),
		TargetUser: req.EmployeeEmail,
		AssetName:  req.AssetName,
		Metadata:   metadata,
	})
	if err != nil {
		return outcome, errors.Wrap(err, "revocation audit")
	}
	return outcome, revokeErr
}

func (i impl) revoke(ctx context.Context, req reviewapimodels.RevocationRequest) (models.RevocationOutcome, error) {
	settings, err := i.settingsStore.Get()
	if err != nil {
		return models.RevocationFailed, err
	}
	if !settings.OktaAutoRevocationEnabled {
		return models.RevocationSkipped, nil
	}
	if !settings.HasOkta() {
		return models.RevocationFailed, models.ConfigurationError("okta domain and api token must be configured for revocation")
	}
	if strings.TrimSpace(req.GroupID) == "" {
		return models.RevocationFailed, models.ValidationError("review item has no okta group id")
	}
	client := i.oktaFactory(*settings)
	members, err := client.ListGroupUsers(ctx, req.GroupID)
	if err != nil {
		return models.RevocationFailed, err
	}
	email := helpers.NormalizeEmail(req.EmployeeEmail)
	userID := ""
	for _, member := range members {
		if helpers.NormalizeEmail(member.ResolvedEmail()) == email {
			userID = member.ID
			break
		}
	}
	if userID == "" {
		return models.RevocationUserNotFound, nil
	}
	if err = client.RemoveUserFromGroup(ctx, req.GroupID, userID); err != nil {
		return models.RevocationFailed, err
	}
	return models.RevocationRevoked, nil
}
