package deliver

import (
	"context"
	"fmt"
	"net/http"

	captionhttp "github.com/randalmurphal/captionmirror/http"
)

// WebhookDeliverer posts each delivery as JSON to a URL.
type WebhookDeliverer struct {
	URL     string
	Headers map[string]string
	client  *captionhttp.Client
}

// NewWebhookDeliverer creates a webhook deliverer.
func NewWebhookDeliverer(url string, headers map[string]string) *WebhookDeliverer {
	return &WebhookDeliverer{
		URL:     url,
		Headers: headers,
		client: captionhttp.NewClient(captionhttp.ClientConfig{
			BaseURL:     url,
			ServiceName: "webhook",
		}),
	}
}

// Deliver implements Deliverer.
func (w *WebhookDeliverer) Deliver(ctx context.Context, d Delivery) error {
	resp, err := w.client.Request(ctx, http.MethodPost, "", d, w.Headers)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return &captionhttp.APIError{
			Service:    "webhook",
			StatusCode: resp.StatusCode,
			Endpoint:   w.URL,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return nil
}
