package reviewhandler

import (
	"context"
	"strings"
	"time"

	"iga-backend/db"
	assetstore "iga-backend/lib/asset/store"
	auditloghandler "iga-backend/lib/audit-log"
	campaignstore "iga-backend/lib/campaign/store"
	"iga-backend/lib/metrics"
	reviewitemstore "iga-backend/lib/review/item-store"
	revocationhandler "iga-backend/lib/revocation"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/utils/helpers"
	initchecker "iga-backend/lib/utils/init-checker"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	reviewapimodels "iga-backend/models/api/review"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	SubmitDecision(ctx context.Context, data reviewapimodels.DecisionData) (reviewapimodels.DecisionResult, error)
	Delegate(ctx context.Context, actorEmail string, data reviewapimodels.DelegationRequest) (reviewapimodels.DelegationResult, error)
	Pending(filter reviewapimodels.ReviewerFilter) (list []reviewapimodels.ReviewItemView, rowCount int64, err error)
	History(filter reviewapimodels.ReviewerFilter) (list []reviewapimodels.ReviewItemView, rowCount int64, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"revocation", revocationhandler.Instance,
	)
	Instance = NewInstance(db.DB, revocationhandler.Instance)
}

func NewInstance(DB *gorm.DB, revocation revocationhandler.Provider) Provider {
	return impl{
		db:            DB,
		itemStore:     reviewitemstore.NewInstance(DB),
		assetStore:    assetstore.NewInstance(DB),
		settingsStore: settingsstore.NewInstance(DB),
		revocation:    revocation,
	}
}

type impl struct {
	db            *gorm.DB
	itemStore     reviewitemstore.Provider
	assetStore    assetstore.Provider
	settingsStore settingsstore.Provider
	revocation    revocationhandler.Provider
}

func (i impl) SubmitDecision(ctx context.Context, data reviewapimodels.DecisionData) (result reviewapimodels.DecisionResult, err error) {
	if err = data.Validate(); err != nil {
		return result, err
	}
	logger := log.
		WithField("review_item_id", data.ReviewItemID).
		WithField("actor_email", data.ActorEmail).
		WithField("decision", data.Decision)

	item, err := i.itemStore.GetByID(data.ReviewItemID)
	if err != nil {
		return result, err
	}
	if item == nil {
		return result, models.NotFoundError("review item %s not found", data.ReviewItemID)
	}
	if !data.ActorRole.IsAdmin() && helpers.NormalizeEmail(item.ReviewerEmail) != helpers.NormalizeEmail(data.ActorEmail) {
		return result, models.ForbiddenError("review item %s is assigned to another reviewer", item.ID)
	}
	if !item.IsPending() {
		return result, models.ConflictError("review item %s is already reviewed", item.ID)
	}
	if data.Decision.IsApproval() && strings.EqualFold(strings.TrimSpace(item.EmployeeEmail), data.ActorEmail) {
		return result, models.ForbiddenError("reviewers cannot approve their own access")
	}
	asset, err := i.assetStore.GetByID(item.AssetID)
	if err != nil {
		return result, err
	}
	if asset == nil {
		return result, models.NotFoundError("asset %s not found", item.AssetID)
	}
	settings, err := i.settingsStore.Get()
	if err != nil {
		return result, err
	}
	evidence := strings.TrimSpace(data.EvidenceNotes)
	if settings.EvidenceRequiredForDirectLogin && !asset.LoginType.IsFederated() && evidence == "" {
		return result, models.ValidationError("evidence notes are required for %s login assets", asset.LoginType)
	}

	decision := string(data.Decision)
	actor := helpers.NormalizeEmail(data.ActorEmail)
	err = i.db.Transaction(func(tx *gorm.DB) error {
		txItemStore := reviewitemstore.NewInstance(tx)
		affected, err := txItemStore.Decide(item.ID, data.Decision, evidence, actor, time.Now())
		if err != nil {
			return err
		}
		if affected == 0 {
			return models.ConflictError("review item %s is already reviewed", item.ID)
		}
		err = auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: actor,
			Action:     string(models.AuditReviewItemDecision),
			TargetUser: item.EmployeeEmail,
			AssetName:  asset.Name,
			Decision:   &decision,
			Metadata: map[string]any{
				"review_item_id": item.ID,
				"campaign_id":    item.CampaignID,
				"okta_group":     item.OktaGroup,
				"evidence_notes": evidence,
			},
		})
		if err != nil {
			return err
		}
		pending, err := txItemStore.CountPending(item.CampaignID)
		if err != nil {
			return err
		}
		if pending == 0 {
			return campaignstore.NewInstance(tx).SetStatus(item.CampaignID, models.CampaignCompleted)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return result, err
		}
		return result, errors.Wrap(err, "review decision")
	}
	metrics.ObserveDecision(decision)
	logger.Info("review decision recorded")

	result = reviewapimodels.DecisionResult{
		ReviewItemID: item.ID,
		Decision:     data.Decision,
	}
	if data.Decision != models.DecisionRevoked || !asset.LoginType.IsFederated() || !asset.HasOktaApp() || i.revocation == nil {
		return result, nil
	}
	outcome, revokeErr := i.revocation.Revoke(ctx, reviewapimodels.RevocationRequest{
		ReviewItemID:  item.ID,
		GroupID:       item.OktaGroupID,
		EmployeeEmail: item.EmployeeEmail,
		AssetName:     asset.Name,
	})
	result.Revocation = &outcome
	if revokeErr != nil {
		logger.WithError(revokeErr).Warn("decision recorded but okta revocation failed")
		result.Warning = "decision recorded, but okta access revocation failed: " + revokeErr.Error()
	}
	return result, nil
}

func (i impl) Delegate(ctx context.Context, actorEmail string, data reviewapimodels.DelegationRequest) (result reviewapimodels.DelegationResult, err error) {
	if err = data.Validate(); err != nil {
		return result, err
	}
	if data.FromEmail == data.ToEmail {
		return result, models.ValidationError("cannot delegate to the same reviewer")
	}
	requestedBy := helpers.NormalizeEmail(actorEmail)
	if requestedBy == "" {
		requestedBy = data.FromEmail
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		reassigned, err := reviewitemstore.NewInstance(tx).Reassign(data.FromEmail, data.ToEmail)
		if err != nil {
			return err
		}
		result.Reassigned = reassigned
		return auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: data.FromEmail,
			Action:     string(models.AuditReviewDelegation),
			TargetUser: data.ToEmail,
			Metadata: map[string]any{
				"requested_by": requestedBy,
				"reassigned":   reassigned,
			},
		})
	})
	if err != nil {
		return reviewapimodels.DelegationResult{}, errors.Wrap(err, "review delegation")
	}
	log.
		WithField("from_email", data.FromEmail).
		WithField("to_email", data.ToEmail).
		WithField("reassigned", result.Reassigned).
		Info("pending reviews delegated")
	return result, nil
}

func (i impl) Pending(filter reviewapimodels.ReviewerFilter) ([]reviewapimodels.ReviewItemView, int64, error) {
	return i.listByStatus(filter, models.ReviewStatusPending)
}

func (i impl) History(filter reviewapimodels.ReviewerFilter) ([]reviewapimodels.ReviewItemView, int64, error) {
	return i.listByStatus(filter, models.ReviewStatusReviewed)
}

func (i impl) listByStatus(filter reviewapimodels.ReviewerFilter, status models.ReviewStatus) ([]reviewapimodels.ReviewItemView, int64, error) {
	reviewer := helpers.NormalizeEmail(filter.Reviewer)
	if reviewer == "" {
		return nil, 0, models.ValidationError("reviewer is required")
	}
	page, limit := filter.GetPage()
	recList, rowCount, err := i.itemStore.ListByReviewer(reviewer, status, filter.CampaignID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	list := make([]reviewapimodels.ReviewItemView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, reviewapimodels.ReviewItemConvert(rec))
	}
	return list, rowCount, nil
}
