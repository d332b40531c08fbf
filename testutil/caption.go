package testutil

import (
	"context"
	"sync"
)

// Caption is a source whose visible text the test sets directly.
type Caption struct {
	mu     sync.Mutex
	text   string
	err    error
	polled int
}

// NewCaption creates a caption showing text.
func NewCaption(text string) *Caption {
	return &Caption{text: text}
}

// Set replaces the visible text and clears any error.
func (c *Caption) Set(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.err = nil
}

// Fail makes subsequent fetches return err.
func (c *Caption) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Polled returns how many times Fetch was called.
func (c *Caption) Polled() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.polled
}

// Fetch implements source.Source.
func (c *Caption) Fetch(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.polled++
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}
