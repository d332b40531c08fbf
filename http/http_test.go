package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "caption-feed",
				StatusCode: 404,
				Message:    "no such stream",
				Endpoint:   "/captions/live",
			},
			wantMsg:    "caption-feed API error (404) at /captions/live: no such stream",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "webhook",
				StatusCode: 502,
				Message:    "Bad Gateway",
				Endpoint:   "/hook",
				RequestID:  "abc123",
			},
			wantMsg:    "webhook API error (502) at /hook [abc123]: Bad Gateway",
			wantUnwrap: ErrServerError,
		},
		{
			name:       "unauthorized",
			err:        &APIError{Service: "slack", StatusCode: 401, Message: "invalid_token", Endpoint: "/services/x"},
			wantMsg:    "slack API error (401) at /services/x: invalid_token",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name:       "forbidden",
			err:        &APIError{Service: "slack", StatusCode: 403, Message: "no", Endpoint: "/"},
			wantMsg:    "slack API error (403) at /: no",
			wantUnwrap: ErrForbidden,
		},
		{
			name:       "rate limited",
			err:        &APIError{Service: "webhook", StatusCode: 429, Message: "slow down", Endpoint: "/"},
			wantMsg:    "webhook API error (429) at /: slow down",
			wantUnwrap: ErrRateLimited,
		},
		{
			name:       "bad request",
			err:        &APIError{Service: "webhook", StatusCode: 400, Message: "bad json", Endpoint: "/"},
			wantMsg:    "webhook API error (400) at /: bad json",
			wantUnwrap: ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantUnwrap) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantUnwrap)
			}
		})
	}

	if (&APIError{StatusCode: 302}).Unwrap() != nil {
		t.Error("Unwrap() of 302 should be nil")
	}
}

func TestPredicates(t *testing.T) {
	notFound := &APIError{StatusCode: 404}
	unauthorized := &APIError{StatusCode: 401}
	forbidden := &APIError{StatusCode: 403}
	limited := &APIError{StatusCode: 429}
	server := &APIError{StatusCode: 503}

	if !IsNotFound(notFound) || IsNotFound(server) {
		t.Error("IsNotFound mismatch")
	}
	if !IsUnauthorized(unauthorized) || !IsUnauthorized(forbidden) || IsUnauthorized(notFound) {
		t.Error("IsUnauthorized mismatch")
	}
	if !IsRetryable(limited) || !IsRetryable(server) || IsRetryable(notFound) {
		t.Error("IsRetryable mismatch")
	}
}

func TestClient_GetText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/captions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "captionmirror" {
			t.Errorf("User-Agent = %q", ua)
		}
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		_, _ = io.WriteString(w, "good morning everyone")
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		BaseURL:     srv.URL,
		ServiceName: "caption-feed",
		BeforeRequest: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer secret")
		},
	})

	text, err := c.GetText(context.Background(), "/captions")
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	if text != "good morning everyone" {
		t.Errorf("GetText = %q", text)
	}
}

func TestClient_GetTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req-1")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"stream ended"}`)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "caption-feed"})

	_, err := c.GetText(context.Background(), "/captions")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Message != "stream ended" || apiErr.RequestID != "req-1" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound = false")
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, RetryWait: time.Millisecond})

	text, err := c.GetText(context.Background(), "/")
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	if text != "ok" {
		t.Errorf("GetText = %q", text)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, MaxRetries: 2, RetryWait: time.Millisecond})

	_, err := c.GetText(context.Background(), "/")
	if !IsRetryable(err) {
		t.Errorf("error = %v, want retryable", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "invalid_payload")
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, ServiceName: "slack", RetryWait: time.Millisecond})

	err := c.Post(context.Background(), "/", map[string]string{"text": "hi"}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Message != "invalid_payload" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"text":"hello"}` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"42"}`)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL})

	var result struct {
		ID string `json:"id"`
	}
	if err := c.Post(context.Background(), "", map[string]string{"text": "hello"}, &result); err != nil {
		t.Fatalf("Post: %v", err)
	}
	if result.ID != "42" {
		t.Errorf("ID = %q", result.ID)
	}
}

func TestClient_PostRawString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "raw caption" {
			t.Errorf("body = %q", body)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL})
	if err := c.Post(context.Background(), "", "raw caption", nil); err != nil {
		t.Fatalf("Post: %v", err)
	}
}

func TestClient_ContextCanceledDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{BaseURL: srv.URL, RetryWait: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetText(ctx, "/")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
}
