package source

import (
	"context"
	"encoding/json"
	"strings"

	captionhttp "github.com/randalmurphal/captionmirror/http"
)

// HTTPSource polls a URL that serves the current caption, either as plain
// text or as a JSON object with a "text" field.
type HTTPSource struct {
	client *captionhttp.Client
	path   string
}

// NewHTTPSource creates a source fetching url. token, when set, is sent as
// a bearer token.
func NewHTTPSource(url, token string) *HTTPSource {
	cfg := captionhttp.ClientConfig{
		BaseURL:     url,
		ServiceName: "caption-feed",
		// A stale caption is worthless; the next poll is only a moment away.
		MaxRetries: 1,
	}
	if token != "" {
		cfg.BeforeRequest = bearer(token)
	}
	return &HTTPSource{client: captionhttp.NewClient(cfg)}
}

// NewHTTPSourceWithClient creates a source using an existing client and a
// path relative to its base URL.
func NewHTTPSourceWithClient(client *captionhttp.Client, path string) *HTTPSource {
	return &HTTPSource{client: client, path: path}
}

// Fetch implements Source. A 404 means no caption is showing.
func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	body, err := s.client.GetText(ctx, s.path)
	if captionhttp.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return Normalize(decodeCaption(body)), nil
}

func decodeCaption(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return body
	}
	return payload.Text
}
