package source

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source returns the caption text currently visible. An empty string means
// no caption is available right now; an error is treated the same way by
// callers.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Func adapts a plain function to Source.
type Func func(ctx context.Context) (string, error)

// Fetch implements Source.
func (f Func) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// Normalize cleans raw caption text: invalid UTF-8 is replaced, trailing
// line breaks are dropped and the result is NFC-normalized so the same words
// always compare equal between polls.
func Normalize(raw string) string {
	s := strings.ToValidUTF8(raw, "�")
	s = strings.TrimRight(s, "\r\n")
	return norm.NFC.String(s)
}

// FileSource re-reads a text file on every fetch. A missing file yields an
// empty snapshot.
type FileSource struct {
	Path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return Normalize(string(data)), nil
}
