package testutil

import (
	"context"
	"sync"

	"github.com/randalmurphal/captionmirror/deliver"
)

// RecordingDeliverer keeps every delivery it receives.
type RecordingDeliverer struct {
	mu         sync.Mutex
	deliveries []deliver.Delivery

	// Err, when set, is returned from every Deliver call after recording.
	Err error
}

// Deliver implements deliver.Deliverer.
func (r *RecordingDeliverer) Deliver(_ context.Context, d deliver.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, d)
	return r.Err
}

// Deliveries returns a copy of the recorded deliveries.
func (r *RecordingDeliverer) Deliveries() []deliver.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]deliver.Delivery(nil), r.deliveries...)
}

// Texts returns the text of each recorded delivery.
func (r *RecordingDeliverer) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	texts := make([]string, len(r.deliveries))
	for i, d := range r.deliveries {
		texts[i] = d.Text
	}
	return texts
}

// BlockingDeliverer records deliveries but holds each one until Release is
// called. Entered is signaled when a delivery starts.
type BlockingDeliverer struct {
	RecordingDeliverer

	Entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// NewBlockingDeliverer creates a deliverer that blocks until released.
func NewBlockingDeliverer() *BlockingDeliverer {
	return &BlockingDeliverer{
		Entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

// Release lets every pending and future delivery complete.
func (b *BlockingDeliverer) Release() {
	b.once.Do(func() { close(b.release) })
}

// Deliver implements deliver.Deliverer.
func (b *BlockingDeliverer) Deliver(ctx context.Context, d deliver.Delivery) error {
	select {
	case b.Entered <- struct{}{}:
	default:
	}
	select {
	case <-b.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return b.RecordingDeliverer.Deliver(ctx, d)
}
