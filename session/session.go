package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/captionmirror/anchor"
	"github.com/randalmurphal/captionmirror/deliver"
	captionhttp "github.com/randalmurphal/captionmirror/http"
	"github.com/randalmurphal/captionmirror/source"
	"github.com/randalmurphal/captionmirror/transcript"
)

// ErrNoStore is returned by Save when the session has no transcript store.
var ErrNoStore = errors.New("no transcript store configured")

// DefaultPollInterval is how often Run fetches the caption.
const DefaultPollInterval = 400 * time.Millisecond

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Config configures a Session.
type Config struct {
	// ID identifies the session in deliveries and saved transcripts.
	// Generated when empty.
	ID string

	// Source supplies caption snapshots. Required for Tick and Run.
	Source source.Source

	// SourceName is recorded in saved transcript metadata.
	SourceName string

	// Deliverer receives copied text. Defaults to a LogDeliverer.
	Deliverer deliver.Deliverer

	// Store, when set, receives History on Clear and Close.
	Store transcript.Manager

	PollInterval time.Duration
	Reconciler   transcript.ReconcilerConfig
	Logger       *slog.Logger

	// AfterTick is called with the new state after every snapshot that
	// reached the reconciler. It runs without the session lock held.
	AfterTick func(State)

	// Now defaults to time.Now.
	Now func() time.Time
}

// State is a point-in-time view of the session for renderers.
type State struct {
	SessionID  string
	History    string
	Anchor     int
	UserAnchor bool
	Updates    int

	// Change is the outcome of the most recent snapshot.
	Change transcript.Change
}

// Session owns a Reconciler and an anchor Tracker.
type Session struct {
	id     string
	cfg    Config
	logger *slog.Logger

	mu         sync.Mutex
	rec        *transcript.Reconciler
	tracker    *anchor.Tracker
	lastFetch  string
	lastChange transcript.Change
	updates    int
	started    time.Time
	closing    bool
	closed     bool

	copies sync.WaitGroup
}

// New creates a session.
func New(cfg Config) (*Session, error) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Deliverer == nil {
		cfg.Deliverer = deliver.NewLogDeliverer(cfg.Logger)
	}
	if cfg.ID == "" {
		id, err := NewID()
		if err != nil {
			return nil, err
		}
		cfg.ID = id
	}

	return &Session{
		id:      cfg.ID,
		cfg:     cfg,
		logger:  cfg.Logger.With("session_id", cfg.ID),
		rec:     transcript.NewReconciler(cfg.Reconciler),
		tracker: anchor.New(),
		started: cfg.Now(),
	}, nil
}

// NewID generates a session ID.
func NewID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 12)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return id, nil
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// Tick fetches one snapshot and folds it into History. Fetch errors are
// logged and treated as no new information.
func (s *Session) Tick(ctx context.Context) transcript.Change {
	if s.cfg.Source == nil {
		return transcript.ChangeNone
	}
	text, err := s.cfg.Source.Fetch(ctx)
	if err != nil {
		// Rejected credentials will not recover between polls.
		if captionhttp.IsUnauthorized(err) {
			s.logger.Warn("caption feed rejected credentials", "error", err)
		} else {
			s.logger.Debug("caption fetch failed", "error", err)
		}
		return transcript.ChangeNone
	}
	return s.Update(text)
}

// Update folds snapshot into History. Empty snapshots and snapshots equal
// to the previous one are skipped.
func (s *Session) Update(snapshot string) transcript.Change {
	s.mu.Lock()
	if snapshot == "" || snapshot == s.lastFetch {
		s.mu.Unlock()
		return transcript.ChangeNone
	}
	s.lastFetch = snapshot

	change := s.rec.Update(snapshot)
	if change.Mutated() {
		s.tracker.HistoryChanged(s.rec.History())
		s.updates++
	}
	s.lastChange = change
	state := s.stateLocked()
	s.mu.Unlock()

	if change == transcript.ChangeReplaced {
		s.logger.Debug("history replaced", "history_len", len(state.History))
	}
	if s.cfg.AfterTick != nil {
		s.cfg.AfterTick(state)
	}
	return change
}

// Run ticks every PollInterval until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	s.logger.Info("session started", "poll_interval", s.cfg.PollInterval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session stopped")
			return ctx.Err()
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Copy delivers History from the anchor to the end. A call made while
// another copy is in flight returns a Skipped result. A Deliverer stored in
// ctx with deliver.WithDeliverer replaces the configured one for this call.
func (s *Session) Copy(ctx context.Context) (anchor.CopyResult, error) {
	var d deliver.Delivery

	extract := func() (string, bool) {
		s.mu.Lock()
		defer s.mu.Unlock()

		history := s.rec.History()
		text, ok := s.tracker.Extract(history)
		if !ok {
			return "", false
		}
		d = deliver.Delivery{
			SessionID:  s.id,
			Text:       text,
			Anchor:     s.tracker.Offset(),
			UserAnchor: s.tracker.UserSet(),
			HistoryLen: len(history),
			Timestamp:  s.cfg.Now(),
		}
		return text, true
	}

	target := s.cfg.Deliverer
	if override := deliver.DelivererFromContext(ctx); override != nil {
		target = override
	}

	res, err := s.tracker.Copy(ctx, extract, func(ctx context.Context, _ string) error {
		return target.Deliver(ctx, d)
	})
	switch {
	case err != nil:
		s.logger.Warn("copy failed", "error", err)
	case res.Skipped:
		s.logger.Debug("copy skipped, another copy in flight")
	case !res.Delivered:
		s.logger.Debug("nothing to copy")
	}
	return res, err
}

// CopyAsync starts Copy on its own goroutine. Close waits for it. Once
// Close has begun, CopyAsync does nothing.
func (s *Session) CopyAsync(ctx context.Context) {
	s.mu.Lock()
	if s.closing {
		s.mu.Unlock()
		s.logger.Debug("copy ignored, session closing")
		return
	}
	s.copies.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.copies.Done()
		_, _ = s.Copy(ctx)
	}()
}

// Clear saves History when a store is configured and then empties History
// and resets the anchor. The last fetched snapshot is kept, so the caption
// already on screen is not re-added until it changes; the first changed
// caption then becomes History in full.
func (s *Session) Clear() error {
	s.mu.Lock()
	rec := s.recordLocked(transcript.EndReasonCleared)
	s.rec.Reset()
	s.tracker.Clear()
	s.lastChange = transcript.ChangeNone
	s.updates = 0
	s.started = s.cfg.Now()
	s.mu.Unlock()

	s.logger.Info("history cleared")
	return s.save(rec)
}

// Save stores History as a manual transcript without clearing it. It
// returns a nil record when History is empty.
func (s *Session) Save() (*transcript.Record, error) {
	if s.cfg.Store == nil {
		return nil, ErrNoStore
	}
	s.mu.Lock()
	rec := s.recordLocked(transcript.EndReasonManual)
	s.mu.Unlock()

	if err := s.save(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Select anchors at the start of the word containing byte offset pos.
func (s *Session) Select(pos int) State {
	return s.SelectIn(pos, anchor.Bytes)
}

// SelectIn is Select with pos counted in unit.
func (s *Session) SelectIn(pos int, unit anchor.Unit) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.rec.History()
	s.tracker.SelectWord(unit.Offset(history, pos), history)
	return s.stateLocked()
}

// SetAnchor anchors at byte offset, snapped to a rune boundary.
func (s *Session) SetAnchor(offset int) State {
	return s.SetAnchorIn(offset, anchor.Bytes)
}

// SetAnchorIn is SetAnchor with the position counted in unit.
func (s *Session) SetAnchorIn(pos int, unit anchor.Unit) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.rec.History()
	s.tracker.SetAnchor(unit.Offset(history, pos), history)
	return s.stateLocked()
}

// Excerpt returns what Copy would deliver right now, or "" when there is
// nothing past the anchor.
func (s *Session) Excerpt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, _ := s.tracker.Extract(s.rec.History())
	return text
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// CopyInFlight reports whether a copy is running.
func (s *Session) CopyInFlight() bool {
	return s.tracker.InFlight()
}

// Resume restores History and anchor from a saved transcript.
func (s *Session) Resume(r *transcript.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec.Restore(r.History, r.Previous)
	s.tracker.Clear()
	if r.Anchor > 0 {
		s.tracker.SetAnchor(r.Anchor, r.History)
	}
	s.lastFetch = ""
	s.logger.Info("transcript resumed", "transcript_id", r.ID, "history_len", len(r.History))
}

// Close waits for pending copies and saves History when a store is
// configured. Calling Close twice is a no-op.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closing = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.copies.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	rec := s.recordLocked(transcript.EndReasonShutdown)
	s.mu.Unlock()

	return s.save(rec)
}

func (s *Session) stateLocked() State {
	return State{
		SessionID:  s.id,
		History:    s.rec.History(),
		Anchor:     s.tracker.Offset(),
		UserAnchor: s.tracker.UserSet(),
		Updates:    s.updates,
		Change:     s.lastChange,
	}
}

// recordLocked builds a transcript record for the current History, or nil
// when there is nothing to keep.
func (s *Session) recordLocked(reason transcript.EndReason) *transcript.Record {
	history := s.rec.History()
	if s.cfg.Store == nil || history == "" {
		return nil
	}

	id, err := NewID()
	if err != nil {
		s.logger.Warn("transcript not saved", "error", err)
		return nil
	}
	meta := transcript.Meta{
		SessionID: s.id,
		Source:    s.cfg.SourceName,
		StartedAt: s.started,
		EndedAt:   s.cfg.Now(),
		Reason:    reason,
		Updates:   s.updates,
	}
	return transcript.NewRecord(id, meta, history, s.rec.Previous(), s.tracker.Offset())
}

func (s *Session) save(rec *transcript.Record) error {
	if rec == nil {
		return nil
	}
	if err := s.cfg.Store.Save(rec); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	s.logger.Info("transcript saved", "transcript_id", rec.ID, "characters", rec.Metadata.Characters)
	return nil
}
