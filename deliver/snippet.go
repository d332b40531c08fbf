package deliver

import (
	"context"
	"fmt"
	"log/slog"

	gitlab "github.com/xanzy/go-gitlab"
)

// SnippetDeliverer publishes each delivery as a private GitLab snippet.
type SnippetDeliverer struct {
	client *gitlab.Client
	logger *slog.Logger
}

// NewSnippetDeliverer creates a snippet deliverer. An empty baseURL uses
// gitlab.com.
func NewSnippetDeliverer(token, baseURL string) (*SnippetDeliverer, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}

	var client *gitlab.Client
	var err error
	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &SnippetDeliverer{client: client, logger: slog.Default()}, nil
}

// Deliver implements Deliverer.
func (s *SnippetDeliverer) Deliver(ctx context.Context, d Delivery) error {
	opts := &gitlab.CreateSnippetOptions{
		Title:       gitlab.Ptr(excerptTitle(d)),
		Description: gitlab.Ptr(footer(d)),
		Visibility:  gitlab.Ptr(gitlab.PrivateVisibility),
		Files: &[]*gitlab.CreateSnippetFileOptions{
			{
				FilePath: gitlab.Ptr(excerptFilename(d)),
				Content:  gitlab.Ptr(d.Text),
			},
		},
	}

	snippet, _, err := s.client.Snippets.CreateSnippet(opts, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create snippet: %w", err)
	}

	s.logger.Info("transcript excerpt published",
		"target", "snippet",
		"url", snippet.WebURL,
		"session_id", d.SessionID,
	)
	return nil
}
