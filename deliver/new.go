package deliver

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Credentials carries tokens for the hosted targets.
type Credentials struct {
	GitHubToken string
	GitLabToken string

	// GitLabURL is the snippet API base URL used when a snippet target names none.
	GitLabURL string
}

// Options configures New.
type Options struct {
	Credentials Credentials

	// Stdout receives "stdout" deliveries.
	Stdout io.Writer

	Logger *slog.Logger
}

// New builds a deliverer from target specs such as "clipboard",
// "file:/tmp/out.txt" or "slack:https://hooks.slack.com/...". Several
// targets are combined with a MultiDeliverer.
//
// Accepted specs:
//
//	log                    log with slog
//	stdout                 write to Options.Stdout
//	clipboard              first clipboard tool on PATH
//	file:PATH              append to PATH
//	webhook:URL            POST JSON to URL
//	slack:URL              Slack incoming webhook
//	gist[:public]          GitHub gist
//	snippet[:BASEURL]      GitLab snippet
func New(targets []string, opts Options) (Deliverer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var ds []Deliverer
	for _, spec := range targets {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		d, err := newTarget(spec, opts, logger)
		if err != nil {
			return nil, fmt.Errorf("delivery target %q: %w", spec, err)
		}
		ds = append(ds, d)
	}

	switch len(ds) {
	case 0:
		return NewLogDeliverer(logger), nil
	case 1:
		return ds[0], nil
	default:
		m := NewMultiDeliverer(ds...)
		m.Logger = logger
		return m, nil
	}
}

func newTarget(spec string, opts Options, logger *slog.Logger) (Deliverer, error) {
	kind, arg, _ := strings.Cut(spec, ":")

	switch strings.ToLower(kind) {
	case "log":
		return NewLogDeliverer(logger), nil
	case "stdout":
		if opts.Stdout == nil {
			return nil, fmt.Errorf("no stdout writer")
		}
		return NewWriterDeliverer(opts.Stdout), nil
	case "clipboard":
		c, err := DetectClipboard()
		if err != nil {
			return nil, err
		}
		c.Logger = logger
		return c, nil
	case "file":
		if arg == "" {
			return nil, fmt.Errorf("file path is required")
		}
		return NewFileDeliverer(arg), nil
	case "webhook":
		if arg == "" {
			return nil, fmt.Errorf("webhook URL is required")
		}
		return NewWebhookDeliverer(arg, nil), nil
	case "slack":
		if arg == "" {
			return nil, fmt.Errorf("slack webhook URL is required")
		}
		return NewSlackDeliverer(arg), nil
	case "gist":
		g, err := NewGistDeliverer(opts.Credentials.GitHubToken, arg == "public")
		if err != nil {
			return nil, err
		}
		g.logger = logger
		return g, nil
	case "snippet":
		if arg == "" {
			arg = opts.Credentials.GitLabURL
		}
		s, err := NewSnippetDeliverer(opts.Credentials.GitLabToken, arg)
		if err != nil {
			return nil, err
		}
		s.logger = logger
		return s, nil
	default:
		return nil, fmt.Errorf("unknown delivery target")
	}
}
