package notificationhandler

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"iga-backend/config"
	"iga-backend/db"
	employeestore "iga-backend/lib/employee/store"
	"iga-backend/lib/external-services/slack/slackclient"
	settingsstore "iga-backend/lib/settings/store"
	"iga-backend/lib/smtp"
	"iga-backend/lib/utils/helpers"
	initchecker "iga-backend/lib/utils/init-checker"
	"iga-backend/models"
	notificationapimodels "iga-backend/models/api/notification"
	slackapimodels "iga-backend/models/api/slack"
	dbmodels "iga-backend/models/db"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	SendSlack(ctx context.Context, msg notificationapimodels.SlackMessage) (notificationapimodels.SlackMessageResult, error)
	// NotifyReviewers is best-effort, failures are logged and counted out.
	NotifyReviewers(ctx context.Context, campaign dbmodels.ReviewCampaign, pending map[string]int64) (notified int)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"smtp", smtp.Instance,
	)
	Instance = NewInstance(db.DB, slackclient.NewClient("", config.Conf.Sync.RequestTimeout), smtp.Instance, Options{
		AppURL:    config.Conf.Notifications.AppURL,
		EmailFrom: config.Conf.Notifications.EmailFrom,
	})
}

type Options struct {
	AppURL    string
	EmailFrom string
}

func NewInstance(DB *gorm.DB, slack slackclient.Provider, mailer smtp.Provider, opts Options) Provider {
	return impl{
		settingsStore: settingsstore.NewInstance(DB),
		employeeStore: employeestore.NewInstance(DB),
		slackClient:   slack,
		mailer:        mailer,
		opts:          opts,
	}
}

type impl struct {
	settingsStore settingsstore.Provider
	employeeStore employeestore.Provider
	slackClient   slackclient.Provider
	mailer        smtp.Provider
	opts          Options
}

func (i impl) SendSlack(ctx context.Context, msg notificationapimodels.SlackMessage) (notificationapimodels.SlackMessageResult, error) {
	if err := msg.Validate(); err != nil {
		return notificationapimodels.SlackMessageResult{}, err
	}
	settings, err := i.settingsStore.Get()
	if err != nil {
		return notificationapimodels.SlackMessageResult{}, err
	}
	if !settings.HasSlack() {
		return notificationapimodels.SlackMessageResult{}, models.ConfigurationError("slack bot token is not configured")
	}
	resp, err := i.slackClient.PostMessage(ctx, settings.SlackBotToken, slackapimodels.PostMessageRequest{
		Channel: strings.TrimSpace(msg.Channel),
		Text:    msg.Text,
	})
	if err != nil {
		return notificationapimodels.SlackMessageResult{}, err
	}
	return notificationapimodels.SlackMessageResult{
		Channel: resp.Channel,
		TS:      resp.TS,
	}, nil
}

func (i impl) NotifyReviewers(ctx context.Context, campaign dbmodels.ReviewCampaign, pending map[string]int64) (notified int) {
	logger := log.
		WithField("campaign_id", campaign.ID).
		WithField("campaign_name", campaign.Name)
	if len(pending) == 0 {
		return 0
	}
	reviewers := make([]string, 0, len(pending))
	for email := range pending {
		reviewers = append(reviewers, helpers.NormalizeEmail(email))
	}
	sort.Strings(reviewers)

	slackToken := ""
	settings, err := i.settingsStore.Get()
	if err != nil {
		logger.WithError(err).Warn("slack reminders disabled, settings not loaded")
	} else if settings.HasSlack() {
		slackToken = settings.SlackBotToken
	}
	slackIDs := map[string]string{}
	if slackToken != "" {
		slackIDs, err = i.employeeStore.SlackIDs(reviewers)
		if err != nil {
			logger.WithError(err).Warn("slack ids not loaded")
			slackIDs = map[string]string{}
		}
	}
	mailEnabled := i.mailer != nil && i.mailer.IsConfigured()

	for _, reviewer := range reviewers {
		if helpers.IsContextDone(ctx) {
			break
		}
		text := i.reminderText(campaign, pending[reviewer])
		delivered := false
		if slackID, ok := slackIDs[reviewer]; ok {
			_, err = i.slackClient.PostMessage(ctx, slackToken, slackapimodels.PostMessageRequest{
				Channel: slackID,
				Text:    text,
			})
			if err != nil {
				logger.WithError(err).WithField("reviewer", reviewer).Warn("slack reminder not sent")
			} else {
				delivered = true
			}
		}
		// e-mail only when no slack DM reached the reviewer
		if !delivered && mailEnabled {
			err = i.mailer.SendEMail(i.opts.EmailFrom, reviewer, campaign.Name, text)
			if err != nil {
				logger.WithError(err).WithField("reviewer", reviewer).Warn("e-mail reminder not sent")
			} else {
				delivered = true
			}
		}
		if delivered {
			notified++
		}
	}
	logger.
		WithField("reviewers", len(reviewers)).
		WithField("notified", notified).
		Info("reviewers notified")
	return notified
}

func (i impl) reminderText(campaign dbmodels.ReviewCampaign, count int64) string {
	text := fmt.Sprintf("You have %d pending access review item(s) in campaign %q, due %s.",
		count, campaign.Name, campaign.DueDate.Format(helpers.DateLayout))
	if i.opts.AppURL != "" {
		text += fmt.Sprintf("\nReview them at %s/reviews", strings.TrimRight(i.opts.AppURL, "/"))
	}
	return text
}
