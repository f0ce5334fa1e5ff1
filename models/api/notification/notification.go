package notificationapimodels

import (
	"iga-backend/models"
	"strings"
)

type SlackMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

func (m SlackMessage) Validate() error {
	if strings.TrimSpace(m.Channel) == "" {
		return models.ValidationError("channel is required")
	}
	if strings.TrimSpace(m.Text) == "" {
		return models.ValidationError("text is required")
	}
	return nil
}

type SlackMessageResult struct {
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}
