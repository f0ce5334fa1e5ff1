package reminderworker

import (
	"context"
	"time"

	"iga-backend/db"
	campaignstore "iga-backend/lib/campaign/store"
	notificationhandler "iga-backend/lib/notification"
	reviewitemstore "iga-backend/lib/review/item-store"
	baseworker "iga-backend/lib/utils/base-worker"
	"iga-backend/lib/utils/helpers"
	initchecker "iga-backend/lib/utils/init-checker"
	dbmodels "iga-backend/models/db"

	"gorm.io/gorm"
)

func StartWorker(ctx context.Context, interval, dueWithin time.Duration) {
	initchecker.CheckInit(
		"notifier", notificationhandler.Instance,
	)
	i := newInstance(db.DB, notificationhandler.Instance, interval, dueWithin)
	go i.Run(ctx, i.handle)
}

func newInstance(DB *gorm.DB, notifier notificationhandler.Provider, interval, dueWithin time.Duration) *impl {
	return &impl{
		BaseImpl:      *baseworker.NewInstance("ReviewReminderWorker", 30*time.Second, interval),
		campaignStore: campaignstore.NewInstance(DB),
		itemStore:     reviewitemstore.NewInstance(DB),
		notifier:      notifier,
		dueWithin:     dueWithin,
	}
}

type impl struct {
	baseworker.BaseImpl
	campaignStore campaignstore.Provider
	itemStore     reviewitemstore.Provider
	notifier      notificationhandler.Provider
	dueWithin     time.Duration
}

// handle reminds every reviewer with pending items in an active campaign due soon.
func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	campaigns, err := i.campaignStore.ListActiveDueBefore(time.Now().Add(i.dueWithin))
	if err != nil {
		logger.WithError(err).Error("active campaigns not loaded")
		return
	}
	if len(campaigns) == 0 {
		return
	}
	byID := make(map[string]dbmodels.ReviewCampaign, len(campaigns))
	ids := make([]string, 0, len(campaigns))
	for _, campaign := range campaigns {
		byID[campaign.ID] = campaign
		ids = append(ids, campaign.ID)
	}
	rows, err := i.itemStore.PendingByReviewer(ids)
	if err != nil {
		logger.WithError(err).Error("pending review counts not loaded")
		return
	}
	perCampaign := map[string]map[string]int64{}
	for _, row := range rows {
		if perCampaign[row.CampaignID] == nil {
			perCampaign[row.CampaignID] = map[string]int64{}
		}
		perCampaign[row.CampaignID][row.ReviewerEmail] += row.Pending
	}
	for _, id := range ids {
		if helpers.IsContextDone(ctx) {
			return
		}
		pending := perCampaign[id]
		if len(pending) == 0 {
			continue
		}
		notified := i.notifier.NotifyReviewers(ctx, byID[id], pending)
		logger.
			WithField("campaign_id", id).
			WithField("notified", notified).
			Info("review reminders sent")
	}
}
