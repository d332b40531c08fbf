package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCLIError(t *testing.T) {
	err := &CLIError{
		Err:        ErrNotAuthenticated,
		Message:    "Test message",
		Suggestion: "Test suggestion",
		Details:    "Test details",
	}

	want := "Test message\nTest details\n\nTest suggestion"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Error("expected error to unwrap to ErrNotAuthenticated")
	}
}

func TestCLIError_MinimalFields(t *testing.T) {
	err := &CLIError{
		Err:     ErrConnectionFailed,
		Message: "Connection failed",
	}

	if err.Error() != "Connection failed" {
		t.Errorf("expected 'Connection failed', got %q", err.Error())
	}
}

func TestWrapAuthError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantType   error
		wantNil    bool
		wantSubstr string
	}{
		{
			name:    "nil error",
			err:     nil,
			wantNil: true,
		},
		{
			name:       "token expired",
			err:        errors.New("token has invalid claims: token is expired"),
			wantType:   ErrTokenExpired,
			wantSubstr: "has expired",
		},
		{
			name:       "invalid token",
			err:        errors.New("invalid token"),
			wantType:   ErrNotAuthenticated,
			wantSubstr: "not authenticated",
		},
		{
			name:       "unauthorized 401",
			err:        errors.New("server returned 401 Unauthorized"),
			wantType:   ErrNotAuthenticated,
			wantSubstr: "not authenticated",
		},
		{
			name:       "forbidden",
			err:        errors.New("403 Forbidden"),
			wantType:   ErrPermissionDenied,
			wantSubstr: "permission",
		},
		{
			name:       "unrelated passes through",
			err:        errors.New("disk full"),
			wantSubstr: "disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAuthError(tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapAuthError() = %v, want nil", got)
				}
				return
			}
			if tt.wantType != nil && !errors.Is(got, tt.wantType) {
				t.Errorf("WrapAuthError() = %v, want %v", got, tt.wantType)
			}
			if !strings.Contains(got.Error(), tt.wantSubstr) {
				t.Errorf("WrapAuthError() = %q, want substring %q", got.Error(), tt.wantSubstr)
			}
		})
	}
}

func TestWrapConnectionError(t *testing.T) {
	url := "http://localhost:7777/captions"

	tests := []struct {
		name        string
		err         error
		wantWrapped bool
		wantDetails bool
		wantSubstr  string
	}{
		{"refused", errors.New("dial tcp 127.0.0.1:7777: connection refused"), true, false, "Cannot connect"},
		{"no host", errors.New("lookup feed.local: no such host"), true, false, "Cannot connect"},
		{"tls", errors.New("x509: certificate signed by unknown authority"), true, true, "TLS"},
		{"timeout", errors.New("context deadline exceeded"), true, false, "timed out"},
		{"other", errors.New("boom"), false, false, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapConnectionError(tt.err, url)

			if errors.Is(got, ErrConnectionFailed) != tt.wantWrapped {
				t.Errorf("wrapped = %v, want %v", !tt.wantWrapped, tt.wantWrapped)
			}
			if !strings.Contains(got.Error(), tt.wantSubstr) {
				t.Errorf("Error() = %q, want substring %q", got.Error(), tt.wantSubstr)
			}

			var cliErr *CLIError
			if errors.As(got, &cliErr) && (cliErr.Details != "") != tt.wantDetails {
				t.Errorf("Details = %q", cliErr.Details)
			}
		})
	}

	if WrapConnectionError(nil, url) != nil {
		t.Error("WrapConnectionError(nil) != nil")
	}
}

func TestWrapTranscriptError(t *testing.T) {
	base := fmt.Errorf("load abc: %w", errors.New("transcript record not found"))

	got := WrapTranscriptError(base, "abc")
	if !errors.Is(got, ErrTranscriptNotFound) {
		t.Errorf("error = %v, want ErrTranscriptNotFound", got)
	}
	if !strings.Contains(got.Error(), `"abc"`) {
		t.Errorf("Error() = %q", got.Error())
	}
	if !IsTranscriptError(got) {
		t.Error("IsTranscriptError = false")
	}

	other := errors.New("permission denied")
	if WrapTranscriptError(other, "abc") != other {
		t.Error("unrelated error should pass through")
	}
}

func TestNewSourceUnavailableError(t *testing.T) {
	cause := errors.New("exec: \"lcdump\": executable file not found in $PATH")
	err := NewSourceUnavailableError("command", cause)

	if !IsSourceError(err) {
		t.Error("IsSourceError = false")
	}
	if !errors.Is(err, cause) {
		t.Error("cause not wrapped")
	}
	if !strings.Contains(err.Error(), "command caption source") {
		t.Errorf("Error() = %q", err.Error())
	}

	if !IsSourceError(NewSourceUnavailableError("file", nil)) {
		t.Error("IsSourceError without cause = false")
	}
}

func TestNewInvalidConfigError(t *testing.T) {
	err := NewInvalidConfigError("display.opacity", errors.New("must be 10..100"))

	if !IsConfigError(err) {
		t.Error("IsConfigError = false")
	}
	if !strings.Contains(err.Error(), "display.opacity") || !strings.Contains(err.Error(), "10..100") {
		t.Errorf("Error() = %q", err.Error())
	}
}

type quietMessenger struct{ DefaultMessenger }

func (quietMessenger) NoClipboardMessage() (string, string) {
	return "clipboard missing", ""
}

func TestWithMessenger(t *testing.T) {
	err := NewNoClipboardError(WithMessenger(quietMessenger{}))

	if err.Error() != "clipboard missing" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !IsDeliveryError(err) {
		t.Error("IsDeliveryError = false")
	}
}

func TestNewNotAuthenticatedError(t *testing.T) {
	if !IsAuthError(NewNotAuthenticatedError()) {
		t.Error("IsAuthError = false")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"auth nil", IsAuthError, nil, false},
		{"auth sentinel", IsAuthError, ErrTokenExpired, true},
		{"auth string", IsAuthError, errors.New("got 401"), true},
		{"conn sentinel", IsConnectionError, fmt.Errorf("x: %w", ErrConnectionFailed), true},
		{"conn string", IsConnectionError, errors.New("dial tcp: connection refused"), true},
		{"conn tls", IsConnectionError, errors.New("tls: handshake failure"), true},
		{"conn timeout", IsConnectionError, errors.New("i/o timeout"), true},
		{"conn other", IsConnectionError, errors.New("boom"), false},
		{"perm sentinel", IsPermissionError, ErrPermissionDenied, true},
		{"perm string", IsPermissionError, errors.New("open x: permission denied"), true},
		{"perm other", IsPermissionError, errors.New("boom"), false},
		{"source", IsSourceError, ErrSourceUnavailable, true},
		{"source other", IsSourceError, ErrInvalidConfig, false},
		{"config nil", IsConfigError, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
