package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	cmerrors "github.com/randalmurphal/captionmirror/errors"
	"github.com/randalmurphal/captionmirror/hotkey"
	"github.com/randalmurphal/captionmirror/transcript"
)

// Poll interval bounds.
const (
	MinPollInterval = 50 * time.Millisecond
	MaxPollInterval = 10 * time.Second
)

// darkPalette replaces the default colors when dark mode is on and the
// user has not picked colors.
var darkPalette = transcript.Palette{
	Text:               "#e6e6e6",
	Background:         "#1e1e1e",
	SelectedBackground: "#3f6b2a",
}

// Settings is the typed view of a Resolved configuration.
type Settings struct {
	SourceKind   string
	SourceTarget string
	SourceToken  string

	PollInterval time.Duration

	CopyKey  hotkey.Binding
	ClearKey hotkey.Binding

	Palette     transcript.Palette
	TextSize    int
	Opacity     int
	AlwaysOnTop bool
	DarkMode    bool
	NoColor     bool

	DeliverTargets []string
	GitHubToken    string
	GitLabToken    string
	GitLabURL      string

	Disjoint transcript.DisjointPolicy

	TranscriptDir  string
	SaveTranscript bool

	ServerAddr    string
	ServerSecret  string
	ServerAPIKeys []string

	LogLevel  string
	LogFormat string
}

// ReconcilerConfig returns the reconciler tuning for these settings.
func (s *Settings) ReconcilerConfig() transcript.ReconcilerConfig {
	return transcript.ReconcilerConfig{Disjoint: s.Disjoint}
}

// Load converts a Resolved configuration into Settings. The first invalid
// value is reported as an errors.ErrInvalidConfig CLIError.
func Load(r *Resolved) (*Settings, error) {
	p := parser{r: r}

	s := &Settings{
		SourceKind:   strings.ToLower(r.Get(KeySourceKind)),
		SourceTarget: r.Get(KeySourceTarget),
		SourceToken:  r.Get(KeySourceToken),

		PollInterval: p.duration(KeyPollInterval, MinPollInterval, MaxPollInterval),

		CopyKey:  p.binding(KeyHotkeyCopy),
		ClearKey: p.binding(KeyHotkeyClear),

		TextSize:    p.intRange(KeyTextSize, 6, 96),
		Opacity:     p.intRange(KeyOpacity, 10, 100),
		AlwaysOnTop: p.bool(KeyAlwaysOnTop),
		DarkMode:    p.bool(KeyDarkMode),
		NoColor:     p.bool(KeyNoColor),

		DeliverTargets: splitList(r.Get(KeyDeliverTargets)),
		GitHubToken:    r.Get(KeyGitHubToken),
		GitLabToken:    r.Get(KeyGitLabToken),
		GitLabURL:      r.Get(KeyGitLabURL),

		Disjoint: p.disjoint(KeyDisjoint),

		TranscriptDir:  r.Get(KeyTranscriptDir),
		SaveTranscript: p.bool(KeyTranscriptSave),

		ServerAddr:    r.Get(KeyServerAddr),
		ServerSecret:  r.Get(KeyServerSecret),
		ServerAPIKeys: splitList(r.Get(KeyServerAPIKeys)),

		LogLevel:  strings.ToLower(r.Get(KeyLogLevel)),
		LogFormat: strings.ToLower(r.Get(KeyLogFormat)),
	}

	s.Palette = p.palette(s.DarkMode)

	if s.CopyKey == s.ClearKey && !s.CopyKey.IsZero() {
		p.fail(KeyHotkeyClear, fmt.Errorf("same binding as %s", KeyHotkeyCopy))
	}
	if s.ServerAddr != "" && len(s.ServerSecret) < 32 && len(s.ServerAPIKeys) == 0 {
		p.fail(KeyServerSecret, fmt.Errorf("the control server needs a secret of at least 32 characters or an API key"))
	}

	if p.err != nil {
		return nil, p.err
	}
	return s, nil
}

// parser records the first error so Load reads as a flat list.
type parser struct {
	r   *Resolved
	err error
}

func (p *parser) fail(key string, err error) {
	if p.err == nil {
		p.err = cmerrors.NewInvalidConfigError(key, err)
	}
}

func (p *parser) duration(key string, lo, hi time.Duration) time.Duration {
	raw := p.r.Get(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		// Bare numbers are milliseconds, as in the settings dialog.
		ms, nerr := strconv.Atoi(raw)
		if nerr != nil {
			p.fail(key, err)
			return 0
		}
		d = time.Duration(ms) * time.Millisecond
	}
	if d < lo || d > hi {
		p.fail(key, fmt.Errorf("%s is outside %s..%s", d, lo, hi))
	}
	return d
}

func (p *parser) intRange(key string, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(p.r.Get(key)))
	if err != nil {
		p.fail(key, err)
		return 0
	}
	if n < lo || n > hi {
		p.fail(key, fmt.Errorf("%d is outside %d..%d", n, lo, hi))
	}
	return n
}

func (p *parser) bool(key string) bool {
	raw := p.r.Get(key)
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, err)
	}
	return b
}

func (p *parser) binding(key string) hotkey.Binding {
	raw := p.r.Get(key)
	if raw == "" {
		return hotkey.Binding{}
	}
	b, err := hotkey.Parse(raw)
	if err != nil {
		p.fail(key, err)
	}
	return b
}

func (p *parser) color(key string) string {
	c := strings.ToLower(strings.TrimSpace(p.r.Get(key)))
	if !transcript.ValidColor(c) {
		p.fail(key, fmt.Errorf("%q is not a #rrggbb color", c))
	}
	return c
}

func (p *parser) palette(dark bool) transcript.Palette {
	pal := transcript.Palette{
		Text:               p.color(KeyTextColor),
		Background:         p.color(KeyBackground),
		SelectedBackground: p.color(KeySelectedColor),
	}
	if !dark {
		return pal
	}
	if p.r.Source(KeyTextColor) == SourceDefault {
		pal.Text = darkPalette.Text
	}
	if p.r.Source(KeyBackground) == SourceDefault {
		pal.Background = darkPalette.Background
	}
	if p.r.Source(KeySelectedColor) == SourceDefault {
		pal.SelectedBackground = darkPalette.SelectedBackground
	}
	return pal
}

func (p *parser) disjoint(key string) transcript.DisjointPolicy {
	switch strings.ToLower(p.r.Get(key)) {
	case "", "append":
		return transcript.DisjointAppend
	case "replace":
		return transcript.DisjointReplace
	default:
		p.fail(key, fmt.Errorf("want append or replace"))
		return transcript.DisjointAppend
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
