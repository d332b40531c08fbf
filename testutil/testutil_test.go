package testutil

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/randalmurphal/captionmirror/deliver"
	"github.com/randalmurphal/captionmirror/source"
)

func TestTempFileString(t *testing.T) {
	path := TempFileString(t, "caption.txt", "hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read temp file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want %q", data, "hello")
	}
}

func TestTestContextWithTimeout(t *testing.T) {
	ctx := TestContextWithTimeout(t, 20*time.Millisecond)

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Error("context should be done after timeout")
	}
}

func TestCancelableContext(t *testing.T) {
	ctx, cancel := CancelableContext(t)
	cancel()

	if ctx.Err() == nil {
		t.Error("context should be done after cancel")
	}
}

func TestCaption(t *testing.T) {
	c := NewCaption("first")
	ctx := TestContext(t)

	if got, _ := c.Fetch(ctx); got != "first" {
		t.Errorf("Fetch() = %q", got)
	}

	c.Fail(errors.New("gone"))
	if _, err := c.Fetch(ctx); err == nil {
		t.Error("Fetch() error = nil after Fail")
	}

	c.Set("second")
	if got, err := c.Fetch(ctx); err != nil || got != "second" {
		t.Errorf("Fetch() = %q, %v", got, err)
	}
	if c.Polled() != 3 {
		t.Errorf("Polled() = %d, want 3", c.Polled())
	}
}

func TestReplayScript(t *testing.T) {
	path := ReplayScript(t, "one", `say "two"`)

	r, err := source.LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay() error = %v", err)
	}

	ctx := TestContext(t)
	for _, want := range []string{"one", `say "two"`} {
		if got, _ := r.Fetch(ctx); got != want {
			t.Errorf("Fetch() = %q, want %q", got, want)
		}
	}
}

func TestRecordingDeliverer(t *testing.T) {
	var d deliver.Deliverer = &RecordingDeliverer{}

	_ = d.Deliver(context.Background(), deliver.Delivery{Text: "a"})
	_ = d.Deliver(context.Background(), deliver.Delivery{Text: "b"})

	texts := d.(*RecordingDeliverer).Texts()
	if len(texts) != 2 || texts[0] != "a" || texts[1] != "b" {
		t.Errorf("Texts() = %v", texts)
	}
}

func TestBlockingDeliverer(t *testing.T) {
	b := NewBlockingDeliverer()
	done := make(chan error, 1)

	go func() {
		done <- b.Deliver(context.Background(), deliver.Delivery{Text: "held"})
	}()

	<-b.Entered
	if len(b.Texts()) != 0 {
		t.Error("delivery recorded before release")
	}

	b.Release()
	if err := <-done; err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if texts := b.Texts(); len(texts) != 1 || texts[0] != "held" {
		t.Errorf("Texts() = %v", texts)
	}
}

func TestBlockingDeliverer_ContextCanceled(t *testing.T) {
	b := NewBlockingDeliverer()
	ctx, cancel := CancelableContext(t)
	cancel()

	if err := b.Deliver(ctx, deliver.Delivery{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Deliver() error = %v, want context.Canceled", err)
	}
}
