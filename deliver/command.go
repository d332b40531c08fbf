package deliver

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	cmerrors "github.com/randalmurphal/captionmirror/errors"
	"github.com/randalmurphal/captionmirror/runner"
)

// DefaultRestoreDelay is how long the pasted text stays on the clipboard
// before the previous contents are put back.
const DefaultRestoreDelay = 100 * time.Millisecond

// CommandDeliverer places text on the system clipboard through helper
// commands and optionally pastes it into the focused window.
//
// When Read is set the previous clipboard contents are saved first and
// restored after RestoreDelay, so the user's clipboard is left as it was.
type CommandDeliverer struct {
	// Write receives the text on stdin, e.g. ["wl-copy"].
	Write []string

	// Read prints the clipboard on stdout, e.g. ["wl-paste", "--no-newline"].
	Read []string

	// Paste sends the paste keystroke, e.g. ["wtype", "-M", "ctrl", "v"].
	Paste []string

	RestoreDelay time.Duration
	Runner       runner.CommandRunner
	Logger       *slog.Logger
}

// Deliver implements Deliverer.
func (c *CommandDeliverer) Deliver(ctx context.Context, d Delivery) error {
	if len(c.Write) == 0 {
		return fmt.Errorf("clipboard write command not configured")
	}
	r := c.Runner
	if r == nil {
		r = runner.NewExecRunner()
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var saved string
	restore := false
	if len(c.Read) > 0 {
		out, err := r.Run(ctx, "", c.Read[0], c.Read[1:]...)
		if err != nil {
			// An empty clipboard makes some read tools exit non-zero.
			logger.Debug("clipboard read failed", "error", err)
		} else {
			saved = out
			restore = saved != ""
		}
	}

	if _, err := r.Run(ctx, d.Text, c.Write[0], c.Write[1:]...); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	if len(c.Paste) == 0 {
		// Nothing pasted, so the text must stay on the clipboard.
		return nil
	}

	if _, err := r.Run(ctx, "", c.Paste[0], c.Paste[1:]...); err != nil {
		return fmt.Errorf("paste: %w", err)
	}

	if restore {
		delay := c.RestoreDelay
		if delay <= 0 {
			delay = DefaultRestoreDelay
		}
		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
		// Restore even when ctx is done so the clipboard is not left
		// holding the transcript.
		if _, err := r.Run(context.WithoutCancel(ctx), saved, c.Write[0], c.Write[1:]...); err != nil {
			logger.Warn("clipboard restore failed", "error", err)
		}
	}

	return nil
}

// clipboardTools lists write/read command pairs in preference order.
var clipboardTools = []struct {
	write []string
	read  []string
}{
	{[]string{"wl-copy"}, []string{"wl-paste", "--no-newline"}},
	{[]string{"xclip", "-selection", "clipboard"}, []string{"xclip", "-selection", "clipboard", "-o"}},
	{[]string{"xsel", "--clipboard", "--input"}, []string{"xsel", "--clipboard", "--output"}},
	{[]string{"pbcopy"}, []string{"pbpaste"}},
}

// DetectClipboard returns a CommandDeliverer for the first clipboard tool
// found on PATH.
func DetectClipboard() (*CommandDeliverer, error) {
	for _, tool := range clipboardTools {
		if _, err := exec.LookPath(tool.write[0]); err == nil {
			return &CommandDeliverer{Write: tool.write, Read: tool.read}, nil
		}
	}
	return nil, cmerrors.NewNoClipboardError()
}
