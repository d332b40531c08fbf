package deliver

import (
	"context"
	"log/slog"
)

// LogDeliverer logs deliveries (for testing/debugging).
type LogDeliverer struct {
	Logger *slog.Logger

	// MaxText limits how much of the text is logged. Zero logs all of it.
	MaxText int
}

// NewLogDeliverer creates a deliverer that logs to logger.
// If logger is nil, uses the default slog logger.
func NewLogDeliverer(logger *slog.Logger) *LogDeliverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDeliverer{Logger: logger}
}

// Deliver implements Deliverer.
func (l *LogDeliverer) Deliver(ctx context.Context, d Delivery) error {
	text := d.Text
	if l.MaxText > 0 && len([]rune(text)) > l.MaxText {
		text = string([]rune(text)[:l.MaxText]) + "..."
	}

	l.Logger.InfoContext(ctx, "transcript delivered",
		"session_id", d.SessionID,
		"anchor", d.Anchor,
		"user_anchor", d.UserAnchor,
		"history_len", d.HistoryLen,
		"text", text,
	)
	return nil
}
