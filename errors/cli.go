package errors

import (
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides customizable error messages.
type ErrorMessenger interface {
	// AuthErrorMessage returns the message and suggestion for requests
	// without valid credentials.
	AuthErrorMessage() (message, suggestion string)

	// TokenExpiredMessage returns the message and suggestion for expired
	// control tokens.
	TokenExpiredMessage() (message, suggestion string)

	// PermissionDeniedMessage returns the message and suggestion for permission errors.
	PermissionDeniedMessage() (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for connection errors.
	// The url parameter is the address that failed to connect.
	ConnectionErrorMessage(url string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for TLS/certificate errors.
	TLSErrorMessage(url string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout errors.
	TimeoutErrorMessage(url string) (message, suggestion string)

	// SourceUnavailableMessage returns the message and suggestion when the
	// caption source of the given kind cannot be opened.
	SourceUnavailableMessage(kind string) (message, suggestion string)

	// NoClipboardMessage returns the message and suggestion when no
	// clipboard tool is installed.
	NoClipboardMessage() (message, suggestion string)

	// InvalidConfigMessage returns the message and suggestion for a bad
	// configuration key.
	InvalidConfigMessage(key string) (message, suggestion string)

	// TranscriptNotFoundMessage returns the message and suggestion for a
	// missing saved transcript.
	TranscriptNotFoundMessage(id string) (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "The request is not authenticated.",
		"Create a token with 'captionmirror token' and send it as a bearer token."
}

func (m DefaultMessenger) TokenExpiredMessage() (string, string) {
	return "Your control token has expired.",
		"Create a new one with 'captionmirror token'."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "You don't have permission to perform this action.",
		"Check the token or API key used for the request."
}

func (m DefaultMessenger) ConnectionErrorMessage(url string) (string, string) {
	return fmt.Sprintf("Cannot connect to %s", url),
		"Check that:\n  - The caption feed is running\n  - The URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(url string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", url),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(url string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", url),
		"The caption feed may be overloaded or unreachable.\nTry again in a moment."
}

func (m DefaultMessenger) SourceUnavailableMessage(kind string) (string, string) {
	return fmt.Sprintf("The %s caption source could not be opened.", kind),
		"Set source.kind and source.target, e.g.\n  captionmirror config set source.kind file\n  captionmirror config set source.target /tmp/captions.txt"
}

func (m DefaultMessenger) NoClipboardMessage() (string, string) {
	return "No clipboard tool was found.",
		"Install wl-clipboard, xclip or xsel, or choose another delivery target."
}

func (m DefaultMessenger) InvalidConfigMessage(key string) (string, string) {
	return fmt.Sprintf("Configuration value %q is invalid.", key),
		"Run 'captionmirror config list' to see the current values and their sources."
}

func (m DefaultMessenger) TranscriptNotFoundMessage(id string) (string, string) {
	return fmt.Sprintf("Transcript %q not found.", id),
		"Run 'captionmirror list' to see saved transcripts."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapAuthError wraps authentication-related errors with helpful guidance.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if strings.Contains(errStr, "token") && strings.Contains(errStr, "expired") {
		msg, suggestion := messenger.TokenExpiredMessage()
		return &CLIError{
			Err:        ErrTokenExpired,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	if strings.Contains(errStr, "unauthenticated") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "invalid token") || strings.Contains(errStr, "401") {
		msg, suggestion := messenger.AuthErrorMessage()
		return &CLIError{
			Err:        ErrNotAuthenticated,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	if strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "403") {
		msg, suggestion := messenger.PermissionDeniedMessage()
		return &CLIError{
			Err:        ErrPermissionDenied,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, url string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(url)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(url)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(url)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// WrapTranscriptError wraps transcript lookup errors with helpful guidance.
func WrapTranscriptError(err error, id string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if strings.Contains(errStr, "not found") {
		msg, suggestion := messenger.TranscriptNotFoundMessage(id)
		return &CLIError{
			Err:        fmt.Errorf("%w: %w", ErrTranscriptNotFound, err),
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

// NewSourceUnavailableError creates an error for a caption source that
// cannot be opened. cause may be nil.
func NewSourceUnavailableError(kind string, cause error, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.SourceUnavailableMessage(kind)
	e := &CLIError{
		Err:        ErrSourceUnavailable,
		Message:    msg,
		Suggestion: suggestion,
	}
	if cause != nil {
		e.Err = fmt.Errorf("%w: %w", ErrSourceUnavailable, cause)
		e.Details = cause.Error()
	}
	return e
}

// NewNoClipboardError creates an error when no clipboard tool is available.
func NewNoClipboardError(opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.NoClipboardMessage()
	return &CLIError{
		Err:        ErrNoClipboard,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewInvalidConfigError creates an error for a malformed configuration
// value.
func NewInvalidConfigError(key string, cause error, opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.InvalidConfigMessage(key)
	e := &CLIError{
		Err:        ErrInvalidConfig,
		Message:    msg,
		Suggestion: suggestion,
	}
	if cause != nil {
		e.Err = fmt.Errorf("%w: %w", ErrInvalidConfig, cause)
		e.Details = cause.Error()
	}
	return e
}

// NewNotAuthenticatedError creates an error for unauthenticated requests.
func NewNotAuthenticatedError(opts ...Option) error {
	messenger := getMessenger(opts)
	msg, suggestion := messenger.AuthErrorMessage()
	return &CLIError{
		Err:        ErrNotAuthenticated,
		Message:    msg,
		Suggestion: suggestion,
	}
}
