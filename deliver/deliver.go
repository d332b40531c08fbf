package deliver

import (
	"context"
	"time"
)

// Delivery is one extracted transcript suffix on its way to a target.
type Delivery struct {
	SessionID string `json:"session_id"`

	// Text is History from the anchor to the end.
	Text string `json:"text"`

	// Anchor is the byte offset in History where Text starts.
	Anchor int `json:"anchor"`

	// UserAnchor is true when the user placed the anchor.
	UserAnchor bool `json:"user_anchor"`

	// HistoryLen is the byte length of History at extraction time.
	HistoryLen int `json:"history_len"`

	Timestamp time.Time `json:"timestamp"`
}

// Deliverer places extracted text somewhere: the clipboard, a file, a chat
// channel. A nil error means delivery was attempted and succeeded.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

// Func adapts a plain function to Deliverer.
type Func func(ctx context.Context, d Delivery) error

// Deliver implements Deliverer.
func (f Func) Deliver(ctx context.Context, d Delivery) error {
	return f(ctx, d)
}

type serviceContextKey string

const delivererServiceKey serviceContextKey = "captionmirror.deliverer"

// WithDeliverer adds a Deliverer to the context.
func WithDeliverer(ctx context.Context, d Deliverer) context.Context {
	return context.WithValue(ctx, delivererServiceKey, d)
}

// DelivererFromContext extracts the Deliverer from context.
// Returns nil if none is configured.
func DelivererFromContext(ctx context.Context) Deliverer {
	if d, ok := ctx.Value(delivererServiceKey).(Deliverer); ok {
		return d
	}
	return nil
}

// MustDelivererFromContext extracts the Deliverer or panics.
func MustDelivererFromContext(ctx context.Context) Deliverer {
	d := DelivererFromContext(ctx)
	if d == nil {
		panic("captionmirror: Deliverer not found in context")
	}
	return d
}
