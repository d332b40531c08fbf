package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolver_Defaults(t *testing.T) {
	resolver := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{
			"poll.interval":   "400ms",
			"display.opacity": "100",
		},
	}, "", "")

	cfg := resolver.Resolve()

	if got := cfg.Get("poll.interval"); got != "400ms" {
		t.Errorf("poll.interval = %q, want %q", got, "400ms")
	}
	if got := cfg.Source("poll.interval"); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
}

func TestResolver_Precedence(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	local := filepath.Join(dir, "local.yaml")

	writeFile(t, global, `
display:
  text_size: 14
  opacity: 90
  dark_mode: true
source:
  kind: command
`)
	writeFile(t, local, `
display:
  opacity: 80
`)
	t.Setenv("TESTAPP_SOURCE_KIND", "http")

	resolver := NewResolverWithPaths(ResolverConfig{
		EnvPrefix: "TESTAPP_",
		Defaults: map[string]string{
			"display.text_size": "12",
			"display.opacity":   "100",
			"source.kind":       "file",
			"log.level":         "info",
		},
	}, global, local)

	cfg := resolver.ResolveWithFlags(map[string]string{"log.level": "debug", "source.target": ""})

	tests := []struct {
		key    string
		value  string
		source Source
	}{
		{"display.text_size", "14", SourceGlobal},
		{"display.opacity", "80", SourceLocal},
		{"display.dark_mode", "true", SourceGlobal},
		{"source.kind", "http", SourceEnv},
		{"log.level", "debug", SourceFlag},
	}

	for _, tt := range tests {
		value, source := cfg.GetWithSource(tt.key)
		if value != tt.value || source != tt.source {
			t.Errorf("%s = %q (%s), want %q (%s)", tt.key, value, source, tt.value, tt.source)
		}
	}

	if _, ok := cfg.All()["source.target"]; ok {
		t.Error("empty flag value should not be applied")
	}
}

func TestResolver_ListsFlatten(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeFile(t, global, `
deliver:
  targets:
    - clipboard
    - file:/tmp/out.txt
`)

	cfg := NewResolverWithPaths(ResolverConfig{}, global, "").Resolve()

	if got := cfg.Get("deliver.targets"); got != "clipboard,file:/tmp/out.txt" {
		t.Errorf("deliver.targets = %q", got)
	}
}

func TestResolver_InvalidYAMLWarns(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeFile(t, global, "display: [unclosed\n")

	var buf bytes.Buffer
	resolver := NewResolverWithPaths(ResolverConfig{
		ErrWriter: &buf,
		Defaults:  map[string]string{"display.opacity": "100"},
	}, global, "")

	cfg := resolver.Resolve()

	if cfg.Get("display.opacity") != "100" {
		t.Error("defaults lost after parse error")
	}
	if len(resolver.Warnings) != 1 {
		t.Errorf("Warnings = %v", resolver.Warnings)
	}
	if !strings.Contains(buf.String(), "Warning: could not parse") {
		t.Errorf("stderr = %q", buf.String())
	}
}

func TestResolver_UnknownKeysIgnored(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeFile(t, global, "display:\n  opacity: 50\n  sparkles: true\n")

	var buf bytes.Buffer
	resolver := NewResolverWithPaths(ResolverConfig{
		ErrWriter: &buf,
		ValidKeys: []string{"display.opacity"},
	}, global, "")

	cfg := resolver.Resolve()

	if cfg.Get("display.opacity") != "50" {
		t.Errorf("display.opacity = %q", cfg.Get("display.opacity"))
	}
	if cfg.Get("display.sparkles") != "" {
		t.Error("unknown key was applied")
	}
	if len(resolver.Warnings) != 1 || !strings.Contains(resolver.Warnings[0], "display.sparkles") {
		t.Errorf("Warnings = %v", resolver.Warnings)
	}
}

func TestResolver_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	cfg := NewResolverWithPaths(ResolverConfig{ErrWriter: &bytes.Buffer{}}, "", "").Resolve()

	if v, src := cfg.GetWithSource(KeyNoColor); v != "true" || src != SourceEnv {
		t.Errorf("no_color = %q (%s)", v, src)
	}
}

func TestNewResolver_Paths(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)

	r := NewResolver(ResolverConfig{
		GlobalConfigDir: "captionmirror",
		LocalConfigName: ".captionmirror.yaml",
		WorkDir:         work,
	})

	if want := filepath.Join(home, ".config", "captionmirror", "config.yaml"); r.GlobalPath() != want {
		t.Errorf("GlobalPath() = %q, want %q", r.GlobalPath(), want)
	}
	if want := filepath.Join(work, ".captionmirror.yaml"); r.LocalPath() != want {
		t.Errorf("LocalPath() = %q, want %q", r.LocalPath(), want)
	}
}

func TestResolved_Keys(t *testing.T) {
	cfg := NewResolverWithPaths(ResolverConfig{
		Defaults: map[string]string{"b": "2", "a": "1", "c": "3"},
	}, "", "").Resolve()

	if got := strings.Join(cfg.Keys(), ","); got != "a,b,c" {
		t.Errorf("Keys() = %s", got)
	}
}

func TestEnvKey(t *testing.T) {
	if got := EnvKey(EnvPrefix, "display.text_size"); got != "CAPTIONMIRROR_DISPLAY_TEXT_SIZE" {
		t.Errorf("EnvKey() = %q", got)
	}
	if got := EnvKey("X_", "always-on-top"); got != "X_ALWAYS_ON_TOP" {
		t.Errorf("EnvKey() = %q", got)
	}
}

func TestDefaultsCoverKeys(t *testing.T) {
	for key := range Defaults() {
		if !contains(Keys(), key) {
			t.Errorf("default %q is not a recognized key", key)
		}
	}
}
