package config

import (
	"os"
	"path/filepath"
)

// Application names used for paths and environment variables.
const (
	AppName         = "captionmirror"
	EnvPrefix       = "CAPTIONMIRROR_"
	LocalConfigName = ".captionmirror.yaml"
)

// Configuration keys.
const (
	KeySourceKind   = "source.kind"
	KeySourceTarget = "source.target"
	KeySourceToken  = "source.token"

	KeyPollInterval = "poll.interval"

	KeyHotkeyCopy  = "hotkey.copy"
	KeyHotkeyClear = "hotkey.clear"

	KeyTextColor     = "display.text_color"
	KeyBackground    = "display.background_color"
	KeySelectedColor = "display.selected_color"
	KeyTextSize      = "display.text_size"
	KeyOpacity       = "display.opacity"
	KeyAlwaysOnTop   = "display.always_on_top"
	KeyDarkMode      = "display.dark_mode"
	KeyNoColor       = "no_color"

	KeyDeliverTargets = "deliver.targets"
	KeyGitHubToken    = "deliver.github_token"
	KeyGitLabToken    = "deliver.gitlab_token"
	KeyGitLabURL      = "deliver.gitlab_url"

	KeyDisjoint = "reconcile.disjoint"

	KeyTranscriptDir  = "transcript.dir"
	KeyTranscriptSave = "transcript.save"

	KeyServerAddr    = "server.addr"
	KeyServerSecret  = "server.secret"
	KeyServerAPIKeys = "server.api_keys"

	KeyLogLevel  = "log.level"
	KeyLogFormat = "log.format"
)

// Keys lists every recognized key.
func Keys() []string {
	return []string{
		KeySourceKind, KeySourceTarget, KeySourceToken,
		KeyPollInterval,
		KeyHotkeyCopy, KeyHotkeyClear,
		KeyTextColor, KeyBackground, KeySelectedColor, KeyTextSize,
		KeyOpacity, KeyAlwaysOnTop, KeyDarkMode, KeyNoColor,
		KeyDeliverTargets, KeyGitHubToken, KeyGitLabToken, KeyGitLabURL,
		KeyDisjoint,
		KeyTranscriptDir, KeyTranscriptSave,
		KeyServerAddr, KeyServerSecret, KeyServerAPIKeys,
		KeyLogLevel, KeyLogFormat,
	}
}

// secretKeys are masked by "config list".
var secretKeys = []string{KeySourceToken, KeyGitHubToken, KeyGitLabToken, KeyServerSecret}

// IsSecret reports whether key holds a credential.
func IsSecret(key string) bool {
	return contains(secretKeys, key)
}

// Defaults returns the built-in default values.
func Defaults() map[string]string {
	return map[string]string{
		KeySourceKind:     "file",
		KeyPollInterval:   "400ms",
		KeyHotkeyCopy:     "ctrl+shift+a",
		KeyHotkeyClear:    "ctrl+shift+d",
		KeyTextColor:      "#000000",
		KeyBackground:     "#ffffff",
		KeySelectedColor:  "#a8df8e",
		KeyTextSize:       "12",
		KeyOpacity:        "100",
		KeyAlwaysOnTop:    "true",
		KeyDarkMode:       "false",
		KeyDeliverTargets: "clipboard",
		KeyDisjoint:       "append",
		KeyTranscriptDir:  DefaultTranscriptDir(),
		KeyTranscriptSave: "true",
		KeyLogLevel:       "info",
		KeyLogFormat:      "text",
	}
}

// DefaultTranscriptDir returns ~/.local/share/captionmirror, or a relative
// directory when the home directory is unknown.
func DefaultTranscriptDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", AppName)
	}
	return "." + AppName
}

// NewAppResolver creates the resolver used by the command line tool.
func NewAppResolver() *Resolver {
	return NewResolver(ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: AppName,
		LocalConfigName: LocalConfigName,
		Defaults:        Defaults(),
		ValidKeys:       Keys(),
	})
}

// NewAppSaveConfig creates the writer used by "config set".
func NewAppSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: AppName,
		LocalConfigName: LocalConfigName,
		ValidKeys:       Keys(),
	}
}
