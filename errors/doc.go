// Package errors provides CLI error patterns with user-friendly messaging.
//
// Core types:
//   - CLIError: Wraps errors with message, suggestion, and details
//   - ErrorMessenger: Interface for customizing error messages
//
// Sentinel errors for common scenarios:
//   - ErrNotAuthenticated: Control request without valid credentials
//   - ErrTokenExpired: Control token has expired
//   - ErrPermissionDenied: Insufficient permissions
//   - ErrConnectionFailed: Caption feed or server is unreachable
//   - ErrSourceUnavailable: Caption source cannot be opened
//   - ErrNoClipboard: No clipboard tool installed
//   - ErrInvalidConfig: Malformed configuration value
//   - ErrTranscriptNotFound: Saved transcript does not exist
//
// Example usage:
//
//	if err := feed.Fetch(ctx); err != nil {
//	    return errors.WrapConnectionError(err, feedURL)
//	}
//
//	// Wrap with custom messages
//	type MyMessenger struct{ errors.DefaultMessenger }
//	func (m MyMessenger) NoClipboardMessage() (string, string) {
//	    return "Clipboard unavailable.", "Use --deliver stdout."
//	}
//
//	wrapped := errors.NewNoClipboardError(errors.WithMessenger(MyMessenger{}))
//
//	if errors.IsSourceError(err) {
//	    // prompt for a different source
//	}
package errors
