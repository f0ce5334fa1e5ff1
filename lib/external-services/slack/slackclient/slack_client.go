package slackclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	externalservices "iga-backend/lib/external-services"
	"iga-backend/lib/utils/helpers"
	"iga-backend/models"
	slackapimodels "iga-backend/models/api/slack"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// https://api.slack.com/methods/users.list
	// UsersByEmail maps normalized e-mail to Slack user id for active humans.
	UsersByEmail(ctx context.Context, token string) (map[string]string, error)

	// https://api.slack.com/methods/chat.postMessage
	PostMessage(ctx context.Context, token string, msg slackapimodels.PostMessageRequest) (*slackapimodels.PostMessageResponse, error)
}

const (
	DefaultHost     string = "https://slack.com/api"
	serviceName     string = "Slack"
	usersListPath   string = "%s/users.list?%s"
	postMessagePath string = "%s/chat.postMessage"
	pageLimit       string = "200"
	maxPages        int    = 1000
)

func NewClient(host string, timeout time.Duration) Provider {
	if host == "" {
		host = DefaultHost
	}
	return &impl{
		host:   strings.TrimRight(host, "/"),
		sender: externalservices.NewSender(serviceName, timeout, nil),
	}
}

type impl struct {
	host   string
	sender externalservices.Sender
}

func (i impl) UsersByEmail(ctx context.Context, token string) (map[string]string, error) {
	result := map[string]string{}
	cursor := ""
	for page := 0; page < maxPages; page++ {
		query := url.Values{}
		query.Set("limit", pageLimit)
		if cursor != "" {
			query.Set("cursor", cursor)
		}
		uri := fmt.Sprintf(usersListPath, i.host, query.Encode())
		logger := log.
			WithField("external_request", uri)
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, models.UpstreamError("invalid Slack request: %v", err)
		}
		authorize(r, token)
		resp := slackapimodels.UsersListResponse{}
		if _, err = i.sender.SendRequest(ctx, logger, r, &resp); err != nil {
			return nil, err
		}
		if !resp.Ok {
			return nil, models.UpstreamError("Slack users.list returned error: %s", slackError(resp.Error))
		}
		for _, member := range resp.Members {
			if member.ID == "" || member.Deleted || member.IsBot {
				continue
			}
			email := helpers.NormalizeEmail(member.Profile.Email)
			if email == "" {
				continue
			}
			result[email] = member.ID
		}
		cursor = resp.ResponseMetadata.NextCursor
		if cursor == "" {
			return result, nil
		}
	}
	return nil, models.UpstreamError("Slack users.list pagination did not terminate")
}

func (i impl) PostMessage(ctx context.Context, token string, msg slackapimodels.PostMessageRequest) (*slackapimodels.PostMessageResponse, error) {
	uri := fmt.Sprintf(postMessagePath, i.host)
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "slack message serialization")
	}
	logger := log.
		WithField("external_request", uri).
		WithField("channel", msg.Channel)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewBuffer(body))
	if err != nil {
		return nil, models.UpstreamError("invalid Slack request: %v", err)
	}
	authorize(r, token)
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	resp := slackapimodels.PostMessageResponse{}
	if _, err = i.sender.SendRequest(ctx, logger, r, &resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return nil, models.UpstreamError("Slack chat.postMessage returned error: %s", slackError(resp.Error))
	}
	return &resp, nil
}

func authorize(r *http.Request, token string) {
	r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", strings.TrimSpace(token)))
}

func slackError(code string) string {
	if code == "" {
		return "unknown_error"
	}
	return code
}
