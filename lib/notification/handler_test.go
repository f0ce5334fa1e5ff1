package notificationhandler

import (
	"context"
	"testing"
	"time"

	"iga-backend/db/testdb"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	notificationapimodels "iga-backend/models/api/notification"
	slackapimodels "iga-backend/models/api/slack"
	dbmodels "iga-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeSlack struct {
	posted []slackapimodels.PostMessageRequest
	err    error
}

func (f *fakeSlack) UsersByEmail(ctx context.Context, token string) (map[string]string, error) {
	return nil, nil
}

func (f *fakeSlack) PostMessage(ctx context.Context, token string, msg slackapimodels.PostMessageRequest) (*slackapimodels.PostMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.posted = append(f.posted, msg)
	return &slackapimodels.PostMessageResponse{
		BaseResponse: slackapimodels.BaseResponse{Ok: true},
		Channel:      msg.Channel,
		TS:           "1700000000.000100",
	}, nil
}

type fakeMailer struct {
	configured bool
	sent       []string
}

func (f *fakeMailer) IsConfigured() bool {
	return f.configured
}

func (f *fakeMailer) SendEMail(from, to, subject, message string) error {
	f.sent = append(f.sent, to)
	return nil
}

func TestSendSlack(t *testing.T) {
	ctx := context.Background()
	DB := testdb.New(t)
	slack := &fakeSlack{}
	handler := NewInstance(DB, slack, &fakeMailer{}, Options{})

	_, err := handler.SendSlack(ctx, notificationapimodels.SlackMessage{Channel: "#iga", Text: "hello"})
	require.True(t, errors.Is(err, models.ErrConfiguration))

	_, err = handler.SendSlack(ctx, notificationapimodels.SlackMessage{Channel: "#iga"})
	require.True(t, errors.Is(err, models.ErrValidation))

	require.Nil(t, DB.Model(&dbmodels.SystemSettings{}).Where("id = ?", dbmodels.SystemSettingsID).Update("slack_bot_token", "xoxb").Error)
	result, err := handler.SendSlack(ctx, notificationapimodels.SlackMessage{Channel: " #iga ", Text: "hello"})
	require.Nil(t, err)
	require.Equal(t, "#iga", result.Channel)
	require.NotEmpty(t, result.TS)
}

func TestNotifyReviewers(t *testing.T) {
	ctx := context.Background()
	DB := testdb.New(t)
	require.Nil(t, DB.Model(&dbmodels.SystemSettings{}).Where("id = ?", dbmodels.SystemSettingsID).Update("slack_bot_token", "xoxb").Error)
	require.Nil(t, DB.Create(&dbmodels.Employee{Email: "owner@co.com", WorkerType: models.WorkerEmployee, SlackID: helpers.StrPtr("U1")}).Error)
	campaign := dbmodels.ReviewCampaign{Name: "Q1 Review", DueDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)}

	slack := &fakeSlack{}
	mailer := &fakeMailer{}
	handler := NewInstance(DB, slack, mailer, Options{AppURL: "https://iga.co.com/"})
	notified := handler.NotifyReviewers(ctx, campaign, map[string]int64{"owner@co.com": 3, "other@co.com": 1})
	require.Equal(t, 1, notified)
	require.Len(t, slack.posted, 1)
	require.Equal(t, "U1", slack.posted[0].Channel)
	require.Contains(t, slack.posted[0].Text, "3 pending")
	require.Contains(t, slack.posted[0].Text, "2024-01-31")
	require.Contains(t, slack.posted[0].Text, "https://iga.co.com/reviews")
	require.Empty(t, mailer.sent)

	mailer.configured = true
	slack.err = models.UpstreamError("Slack: channel_not_found")
	notified = handler.NotifyReviewers(ctx, campaign, map[string]int64{"owner@co.com": 3, "other@co.com": 1})
	require.Equal(t, 2, notified)
	require.Equal(t, []string{"other@co.com", "owner@co.com"}, mailer.sent)

	mailer.sent = nil
	slack.err = nil
	notified = handler.NotifyReviewers(ctx, campaign, map[string]int64{"owner@co.com": 3, "other@co.com": 1})
	require.Equal(t, 2, notified)
	require.Equal(t, []string{"other@co.com"}, mailer.sent)

	require.Zero(t, handler.NotifyReviewers(ctx, campaign, nil))
}
