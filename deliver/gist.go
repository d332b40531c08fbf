package deliver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GistDeliverer publishes each delivery as a new GitHub gist.
type GistDeliverer struct {
	client *github.Client
	public bool
	logger *slog.Logger
}

// NewGistDeliverer creates a gist deliverer authenticated with a personal
// access token. Gists are secret unless public is set.
func NewGistDeliverer(token string, public bool) (*GistDeliverer, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return NewGistDelivererWithClient(github.NewClient(tc), public), nil
}

// NewGistDelivererWithClient creates a gist deliverer from an existing
// client (GitHub Enterprise, tests).
func NewGistDelivererWithClient(client *github.Client, public bool) *GistDeliverer {
	return &GistDeliverer{client: client, public: public, logger: slog.Default()}
}

// Deliver implements Deliverer.
func (g *GistDeliverer) Deliver(ctx context.Context, d Delivery) error {
	name := excerptFilename(d)
	gist := &github.Gist{
		Description: github.String(excerptTitle(d)),
		Public:      github.Bool(g.public),
		Files: map[github.GistFilename]github.GistFile{
			github.GistFilename(name): {
				Filename: github.String(name),
				Content:  github.String(d.Text),
			},
		},
	}

	created, _, err := g.client.Gists.Create(ctx, gist)
	if err != nil {
		return fmt.Errorf("create gist: %w", err)
	}

	g.logger.Info("transcript excerpt published",
		"target", "gist",
		"url", created.GetHTMLURL(),
		"session_id", d.SessionID,
	)
	return nil
}

func excerptFilename(d Delivery) string {
	return fmt.Sprintf("transcript-%s.txt", d.Timestamp.UTC().Format("20060102-150405"))
}

func excerptTitle(d Delivery) string {
	title := "Transcript excerpt " + d.Timestamp.UTC().Format("2006-01-02 15:04")
	if d.SessionID != "" {
		title += " (" + d.SessionID + ")"
	}
	return title
}
