package errors

import "errors"

// Common CLI errors with actionable guidance.
var (
	// ErrNotAuthenticated indicates a control request carried no valid
	// credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired indicates the control token has expired.
	ErrTokenExpired = errors.New("token expired")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConnectionFailed indicates a caption feed or control server is
	// unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSourceUnavailable indicates no caption source could be opened.
	ErrSourceUnavailable = errors.New("caption source unavailable")

	// ErrNoClipboard indicates no clipboard tool was found.
	ErrNoClipboard = errors.New("no clipboard tool")

	// ErrInvalidConfig indicates a configuration value is malformed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrTranscriptNotFound indicates a saved transcript does not exist.
	ErrTranscriptNotFound = errors.New("transcript not found")
)
