package deliver

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// WriterDeliverer writes each delivery to an io.Writer followed by a
// newline.
type WriterDeliverer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterDeliverer creates a deliverer writing to w.
func NewWriterDeliverer(w io.Writer) *WriterDeliverer {
	return &WriterDeliverer{w: w}
}

// Deliver implements Deliverer.
func (wd *WriterDeliverer) Deliver(ctx context.Context, d Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wd.mu.Lock()
	defer wd.mu.Unlock()

	if _, err := io.WriteString(wd.w, d.Text+"\n"); err != nil {
		return fmt.Errorf("write delivery: %w", err)
	}
	return nil
}

// FileDeliverer appends each delivery to a file, separated by a header line
// with the delivery time.
type FileDeliverer struct {
	mu   sync.Mutex
	Path string
}

// NewFileDeliverer creates a deliverer appending to path.
func NewFileDeliverer(path string) *FileDeliverer {
	return &FileDeliverer{Path: path}
}

// Deliver implements Deliverer.
func (fd *FileDeliverer) Deliver(ctx context.Context, d Delivery) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fd.mu.Lock()
	defer fd.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(fd.Path), 0o755); err != nil {
		return fmt.Errorf("create delivery dir: %w", err)
	}

	f, err := os.OpenFile(fd.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open delivery file: %w", err)
	}
	defer f.Close()

	header := fmt.Sprintf("--- %s", d.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	if d.SessionID != "" {
		header += " " + d.SessionID
	}
	if _, err := fmt.Fprintf(f, "%s\n%s\n\n", header, d.Text); err != nil {
		return fmt.Errorf("write delivery file: %w", err)
	}
	return nil
}
