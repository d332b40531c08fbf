package session

import (
	"context"

	"github.com/randalmurphal/captionmirror/hotkey"
)

// BindHotkeys binds copy and clear on d. The copy handler starts an async
// copy so the caller's key loop is never blocked by delivery.
func (s *Session) BindHotkeys(ctx context.Context, d *hotkey.Dispatcher, copyKey, clearKey hotkey.Binding) error {
	if err := d.Bind(copyKey, hotkey.ActionCopy, func() {
		s.CopyAsync(ctx)
	}); err != nil {
		return err
	}
	return d.Bind(clearKey, hotkey.ActionClear, func() {
		if err := s.Clear(); err != nil {
			s.logger.Warn("clear failed", "error", err)
		}
	})
}
