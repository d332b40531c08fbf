package deliver

import (
	"context"
	"fmt"
	"unicode/utf8"

	captionhttp "github.com/randalmurphal/captionmirror/http"
)

// slackTextLimit keeps messages under Slack's 40k character cap with room
// for the header.
const slackTextLimit = 39000

// SlackDeliverer posts each delivery to a Slack incoming webhook.
type SlackDeliverer struct {
	WebhookURL string
	Channel    string
	Username   string
	client     *captionhttp.Client
}

// SlackOption configures SlackDeliverer.
type SlackOption func(*SlackDeliverer)

// WithSlackChannel sets the channel to post to.
func WithSlackChannel(channel string) SlackOption {
	return func(s *SlackDeliverer) { s.Channel = channel }
}

// WithSlackUsername sets the bot username.
func WithSlackUsername(username string) SlackOption {
	return func(s *SlackDeliverer) { s.Username = username }
}

// NewSlackDeliverer creates a Slack webhook deliverer.
func NewSlackDeliverer(webhookURL string, opts ...SlackOption) *SlackDeliverer {
	s := &SlackDeliverer{
		WebhookURL: webhookURL,
		Username:   "captionmirror",
		client: captionhttp.NewClient(captionhttp.ClientConfig{
			BaseURL:     webhookURL,
			ServiceName: "slack",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deliver implements Deliverer.
func (s *SlackDeliverer) Deliver(ctx context.Context, d Delivery) error {
	text := d.Text
	if utf8.RuneCountInString(text) > slackTextLimit {
		text = string([]rune(text)[:slackTextLimit]) + "…"
	}

	payload := slackPayload{
		Username: s.Username,
		Channel:  s.Channel,
		Attachments: []slackAttachment{
			{
				Color:     "#a8df8e",
				Title:     "Transcript excerpt",
				Text:      text,
				Footer:    footer(d),
				Timestamp: d.Timestamp.Unix(),
			},
		},
	}

	if err := s.client.Post(ctx, "", payload, nil); err != nil {
		return fmt.Errorf("send slack message: %w", err)
	}
	return nil
}

func footer(d Delivery) string {
	anchor := "auto anchor"
	if d.UserAnchor {
		anchor = "user anchor"
	}
	if d.SessionID == "" {
		return anchor
	}
	return fmt.Sprintf("Session: %s | %s", d.SessionID, anchor)
}

type slackPayload struct {
	Channel     string            `json:"channel,omitempty"`
	Username    string            `json:"username,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color     string `json:"color"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	Footer    string `json:"footer,omitempty"`
	Timestamp int64  `json:"ts,omitempty"`
}
