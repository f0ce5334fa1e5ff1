package campaignhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iga-backend/config"
	"iga-backend/db"
	assetstore "iga-backend/lib/asset/store"
	auditloghandler "iga-backend/lib/audit-log"
	campaignstore "iga-backend/lib/campaign/store"
	pdfexport "iga-backend/lib/export/pdf"
	xlsexport "iga-backend/lib/export/xls"
	"iga-backend/lib/external-services/okta/oktaclient"
	filestorage "iga-backend/lib/file-storage"
	"iga-backend/lib/metrics"
	notificationhandler "iga-backend/lib/notification"
	reviewitemstore "iga-backend/lib/review/item-store"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/utils/helpers"
	initchecker "iga-backend/lib/utils/init-checker"
	"iga-backend/models"
	auditapimodels "iga-backend/models/api/audit"
	campaignapimodels "iga-backend/models/api/campaign"
	oktaapimodels "iga-backend/models/api/okta"
	reviewapimodels "iga-backend/models/api/review"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Provider interface {
	Generate(ctx context.Context, actorEmail string, data campaignapimodels.CampaignCreateData) (campaignapimodels.CampaignResult, error)
	List(filter campaignapimodels.CampaignFilter) (list []campaignapimodels.CampaignView, rowCount int64, err error)
	Get(id string) (campaignapimodels.CampaignView, error)
	Items(id string) ([]reviewapimodels.ReviewItemView, error)
	Export(ctx context.Context, id string, req campaignapimodels.ExportRequest) (campaignapimodels.ExportResult, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"notifier", notificationhandler.Instance,
		"xls exporter", xlsexport.Instance,
	)
	Instance = NewInstance(db.DB, oktaclient.DefaultFactory, Options{
		Parallelism:   config.Conf.Okta.Parallelism,
		NotifyCreated: config.Conf.Notifications.CampaignCreated != nil && *config.Conf.Notifications.CampaignCreated,
		Notifier:      notificationhandler.Instance,
		XlsExporter:   xlsexport.Instance,
		Storage:       filestorage.Instance,
	})
}

type Options struct {
	// assets enumerated concurrently, 1 when unset
	Parallelism   int
	NotifyCreated bool
	Notifier      notificationhandler.Provider
	XlsExporter   xlsexport.Provider
	// nil disables report upload
	Storage filestorage.Provider
}

func NewInstance(DB *gorm.DB, oktaFactory oktaclient.Factory, opts Options) Provider {
	if opts.Parallelism <= 0 {
		opts.Parallelism = 1
	}
	return impl{
		db:            DB,
		settingsStore: settingsstore.NewInstance(DB),
		assetStore:    assetstore.NewInstance(DB),
		campaignStore: campaignstore.NewInstance(DB),
		itemStore:     reviewitemstore.NewInstance(DB),
		oktaFactory:   oktaFactory,
		opts:          opts,
	}
}

type impl struct {
	db            *gorm.DB
	settingsStore settingsstore.Provider
	assetStore    assetstore.Provider
	campaignStore campaignstore.Provider
	itemStore     reviewitemstore.Provider
	oktaFactory   oktaclient.Factory
	opts          Options
}

func (i impl) Generate(ctx context.Context, actorEmail string, data campaignapimodels.CampaignCreateData) (result campaignapimodels.CampaignResult, err error) {
	if err = data.Validate(); err != nil {
		return result, err
	}
	logger := log.
		WithField("campaign_name", data.Name).
		WithField("scope", data.Scope).
		WithField("actor_email", actorEmail)

	settings, err := i.settingsStore.Get()
	if err != nil {
		return result, err
	}
	if !settings.HasOkta() {
		return result, models.ConfigurationError("okta domain and api token must be configured before generating a campaign")
	}

	var assetIDs []string
	if data.Scope == models.ScopeSelectedAssets {
		assetIDs = data.AssetIDs
	}
	assets, err := i.assetStore.ListWithOktaApp(assetIDs)
	if err != nil {
		return result, errors.Wrap(err, "campaign assets load")
	}

	// Okta is enumerated before anything is written so an upstream failure leaves no partial campaign.
	items, err := i.enumerate(ctx, i.oktaFactory(*settings), assets)
	if err != nil {
		logger.WithError(err).Error("campaign generation aborted, okta enumeration failed")
		return result, err
	}

	start, due := data.Dates()
	campaign := dbmodels.ReviewCampaign{
		Name:      data.Name,
		StartDate: start,
		DueDate:   due,
		Status:    models.CampaignActive,
		Scope:     data.Scope,
		CreatedBy: helpers.NormalizeEmail(actorEmail),
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		campaignID, err := campaignstore.NewInstance(tx).Create(campaign)
		if err != nil {
			return err
		}
		campaign.ID = campaignID
		for idx := range items {
			items[idx].CampaignID = campaignID
		}
		if err = reviewitemstore.NewInstance(tx).CreateBatch(items); err != nil {
			return err
		}
		return auditloghandler.NewHandlerWithTx(tx).Write(auditapimodels.AuditEntry{
			ActorEmail: actorEmail,
			Action:     string(models.AuditReviewCampaignCreated),
			Metadata: map[string]any{
				"campaign_id":          campaignID,
				"campaign_name":        campaign.Name,
				"scope":                string(campaign.Scope),
				"processed_assets":     len(assets),
				"created_review_items": len(items),
			},
		})
	})
	if err != nil {
		return result, errors.Wrap(err, "campaign persist")
	}
	metrics.ObserveReviewItems(len(items))
	logger.
		WithField("campaign_id", campaign.ID).
		WithField("processed_assets", len(assets)).
		WithField("created_review_items", len(items)).
		Info("review campaign generated")

	if i.opts.NotifyCreated && i.opts.Notifier != nil && len(items) > 0 {
		i.opts.Notifier.NotifyReviewers(ctx, campaign, pendingPerReviewer(items))
	}
	return campaignapimodels.CampaignResult{
		CampaignID:         campaign.ID,
		ProcessedAssets:    len(assets),
		CreatedReviewItems: len(items),
	}, nil
}

// enumerate lists every group member of every asset's Okta app. Results keep asset order.
func (i impl) enumerate(ctx context.Context, client oktaclient.Provider, assets []dbmodels.Asset) ([]dbmodels.ReviewItem, error) {
	perAsset := make([][]dbmodels.ReviewItem, len(assets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(i.opts.Parallelism)
	for idx, asset := range assets {
		if asset.ReviewerEmail() == "" || !asset.HasOktaApp() {
			log.WithField("asset_id", asset.ID).Debug("asset skipped, no owner or okta app")
			continue
		}
		group.Go(func() error {
			items, err := assetItems(groupCtx, client, asset)
			if err != nil {
				return err
			}
			perAsset[idx] = items
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	result := []dbmodels.ReviewItem{}
	for _, items := range perAsset {
		result = append(result, items...)
	}
	return result, nil
}

func assetItems(ctx context.Context, client oktaclient.Provider, asset dbmodels.Asset) ([]dbmodels.ReviewItem, error) {
	appID := strings.TrimSpace(*asset.OktaID)
	groups, err := client.ListAppGroups(ctx, appID)
	if err != nil {
		return nil, err
	}
	items := []dbmodels.ReviewItem{}
	for _, group := range groups {
		members, err := client.ListGroupUsers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, groupItems(asset, group, members)...)
	}
	return items, nil
}

func groupItems(asset dbmodels.Asset, group oktaapimodels.Group, members []oktaapimodels.User) []dbmodels.ReviewItem {
	items := make([]dbmodels.ReviewItem, 0, len(members))
	for _, member := range members {
		email := helpers.NormalizeEmail(member.ResolvedEmail())
		if email == "" {
			continue
		}
		items = append(items, dbmodels.ReviewItem{
			AssetID:       asset.ID,
			EmployeeEmail: email,
			ReviewerEmail: asset.ReviewerEmail(),
			Status:        models.ReviewStatusPending,
			OktaGroup:     group.DisplayName(),
			OktaGroupID:   group.ID,
		})
	}
	return items
}

func pendingPerReviewer(items []dbmodels.ReviewItem) map[string]int64 {
	pending := map[string]int64{}
	for _, item := range items {
		pending[item.ReviewerEmail]++
	}
	return pending
}

func (i impl) List(filter campaignapimodels.CampaignFilter) (list []campaignapimodels.CampaignView, rowCount int64, err error) {
	page, limit := filter.GetPage()
	recList, rowCount, err := i.campaignStore.List(filter.Status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]string, 0, len(recList))
	for _, rec := range recList {
		ids = append(ids, rec.ID)
	}
	stats, err := i.campaignStore.Stats(ids)
	if err != nil {
		return nil, 0, err
	}
	list = make([]campaignapimodels.CampaignView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, campaignapimodels.CampaignConvert(rec, stats[rec.ID]))
	}
	return list, rowCount, nil
}

func (i impl) Get(id string) (campaignapimodels.CampaignView, error) {
	rec, err := i.campaignStore.GetByID(id)
	if err != nil {
		return campaignapimodels.CampaignView{}, err
	}
	if rec == nil {
		return campaignapimodels.CampaignView{}, models.NotFoundError("campaign %s not found", id)
	}
	stats, err := i.campaignStore.Stats([]string{rec.ID})
	if err != nil {
		return campaignapimodels.CampaignView{}, err
	}
	return campaignapimodels.CampaignConvert(*rec, stats[rec.ID]), nil
}

func (i impl) Items(id string) ([]reviewapimodels.ReviewItemView, error) {
	rec, err := i.campaignStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.NotFoundError("campaign %s not found", id)
	}
	recList, err := i.itemStore.ListByCampaign(id)
	if err != nil {
		return nil, err
	}
	list := make([]reviewapimodels.ReviewItemView, 0, len(recList))
	for _, item := range recList {
		list = append(list, reviewapimodels.ReviewItemConvert(item))
	}
	return list, nil
}

func (i impl) Export(ctx context.Context, id string, req campaignapimodels.ExportRequest) (result campaignapimodels.ExportResult, err error) {
	if err = req.Validate(); err != nil {
		return result, err
	}
	campaign, err := i.Get(id)
	if err != nil {
		return result, err
	}
	items, err := i.Items(id)
	if err != nil {
		return result, err
	}
	now := time.Now()
	baseName := fmt.Sprintf("campaign-%s-%s", id, now.UTC().Format("20060102"))
	switch req.Format {
	case models.ExportPDF:
		body, err := pdfexport.GenerateAttestation(campaign, items, now)
		if err != nil {
			return result, errors.Wrap(err, "campaign pdf export")
		}
		result = campaignapimodels.ExportResult{
			FileName:    baseName + ".pdf",
			ContentType: "application/pdf",
			Body:        body,
		}
	default:
		exporter := i.opts.XlsExporter
		if exporter == nil {
			return result, models.ConfigurationError("xlsx export is not initialized")
		}
		buf, err := exporter.ExportCampaignItems(campaign, items)
		if err != nil {
			return result, errors.Wrap(err, "campaign xlsx export")
		}
		result = campaignapimodels.ExportResult{
			FileName:    baseName + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Body:        buf.Bytes(),
		}
	}
	if !req.Upload {
		return result, nil
	}
	if i.opts.Storage == nil {
		return result, models.ConfigurationError("object storage is not configured")
	}
	result.URL, err = i.opts.Storage.UploadReport(ctx, id, result.FileName, result.ContentType, result.Body)
	if err != nil {
		return result, models.UpstreamError("report upload failed: %v", err)
	}
	return result, nil
}
