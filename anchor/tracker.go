package anchor

import (
	"context"
	"sync/atomic"
	"unicode/utf8"
)

// DeliverFunc hands extracted text to the delivery target.
type DeliverFunc func(ctx context.Context, text string) error

// ExtractFunc produces the text to deliver. ok is false when there is
// nothing to copy.
type ExtractFunc func() (text string, ok bool)

// CopyResult describes the outcome of a Copy call.
type CopyResult struct {
	// Text is what was extracted (empty when skipped or nothing to copy).
	Text string

	// Delivered is true when the deliver function returned nil.
	Delivered bool

	// Skipped is true when another copy was already in flight.
	Skipped bool
}

// Tracker holds one offset into History and guards extract-and-deliver
// against overlapping execution.
//
// Offset state is not synchronized; callers serialize SetAnchor,
// HistoryChanged, Extract and Clear. Only Copy may run concurrently.
type Tracker struct {
	offset   int
	userSet  bool
	inFlight atomic.Bool
}

// New creates a tracker in the auto state at offset 0.
func New() *Tracker {
	return &Tracker{}
}

// Offset returns the current anchor byte offset.
func (t *Tracker) Offset() int {
	return t.offset
}

// UserSet reports whether the anchor was placed by the user.
func (t *Tracker) UserSet() bool {
	return t.userSet
}

// InFlight reports whether a Copy is currently running.
func (t *Tracker) InFlight() bool {
	return t.inFlight.Load()
}

// SetAnchor places a user anchor at offset, clamped to [0, len(history)]
// and moved back onto a rune boundary.
func (t *Tracker) SetAnchor(offset int, history string) {
	t.offset = clamp(offset, history)
	t.userSet = true
}

// SelectWord places a user anchor at the start of the word containing pos.
func (t *Tracker) SelectWord(pos int, history string) {
	t.SetAnchor(WordStart(history, pos), history)
}

// HistoryChanged resets an auto anchor to the start of history. A user
// anchor stays where it is unless history got shorter than it, in which
// case it is clamped to the new end.
func (t *Tracker) HistoryChanged(history string) {
	if !t.userSet {
		t.offset = 0
		return
	}
	t.offset = clamp(t.offset, history)
}

// Extract returns history from the anchor to the end. ok is false when
// history is empty or the anchor sits at (or past) its end.
func (t *Tracker) Extract(history string) (string, bool) {
	if history == "" || t.offset < 0 || t.offset >= len(history) {
		return "", false
	}
	return history[clamp(t.offset, history):], true
}

// Clear resets the anchor to 0 in the auto state.
func (t *Tracker) Clear() {
	t.offset = 0
	t.userSet = false
}

// Copy runs extract then deliver, at most once at a time. A call made while
// another is in flight returns immediately with Skipped set; it is never
// queued.
func (t *Tracker) Copy(ctx context.Context, extract ExtractFunc, deliver DeliverFunc) (CopyResult, error) {
	if !t.inFlight.CompareAndSwap(false, true) {
		return CopyResult{Skipped: true}, nil
	}
	defer t.inFlight.Store(false)

	text, ok := extract()
	if !ok {
		return CopyResult{}, nil
	}

	if err := deliver(ctx, text); err != nil {
		return CopyResult{Text: text}, err
	}
	return CopyResult{Text: text, Delivered: true}, nil
}

func clamp(offset int, history string) int {
	if offset <= 0 {
		return 0
	}
	if offset >= len(history) {
		return len(history)
	}
	for offset > 0 && !utf8.RuneStart(history[offset]) {
		offset--
	}
	return offset
}
