package transcript

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// Transcript errors
var (
	ErrRecordNotFound      = errors.New("transcript not found")
	ErrRecordAlreadyExists = errors.New("transcript already exists")
	ErrEmptyHistory        = errors.New("history is empty")
	ErrInvalidID           = errors.New("invalid transcript id")
)

// recordDir returns the directory holding id under baseDir. Ids must be a
// single path element.
func recordDir(baseDir, id string) (string, error) {
	if id == "" || id == "." || id == ".." || filepath.Base(id) != id || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(baseDir, "transcripts", id), nil
}

// EndReason records why a transcript was closed.
type EndReason string

const (
	EndReasonCleared  EndReason = "cleared"
	EndReasonShutdown EndReason = "shutdown"
	EndReasonManual   EndReason = "manual"
)

// compressionThreshold is the encoded size above which records are gzipped.
const compressionThreshold = 8 * 1024

// Record is a persisted History together with its metadata.
type Record struct {
	ID       string `json:"id"`
	Metadata Meta   `json:"metadata"`
	History  string `json:"history"`
	Previous string `json:"previous,omitempty"`
	Anchor   int    `json:"anchor"`
}

// Meta describes a saved transcript without its text.
type Meta struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Source     string    `json:"source,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	EndedAt    time.Time `json:"endedAt"`
	Reason     EndReason `json:"reason"`
	Characters int       `json:"characters"`
	Updates    int       `json:"updates"`
}

// Duration returns how long the transcript was being captured.
func (m Meta) Duration() time.Duration {
	if m.EndedAt.IsZero() {
		return time.Since(m.StartedAt)
	}
	return m.EndedAt.Sub(m.StartedAt)
}

// NewRecord builds a record for history, filling in the character count.
func NewRecord(id string, meta Meta, history, previous string, anchor int) *Record {
	meta.ID = id
	meta.Characters = utf8.RuneCountInString(history)
	return &Record{
		ID:       id,
		Metadata: meta,
		History:  history,
		Previous: previous,
		Anchor:   anchor,
	}
}

// Save writes the record under baseDir/transcripts/<id>.
func (r *Record) Save(baseDir string) error {
	dir, err := recordDir(baseDir, r.ID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	if len(data) > compressionThreshold {
		return r.saveCompressed(dir, data)
	}

	os.Remove(filepath.Join(dir, "transcript.json.gz"))

	return os.WriteFile(filepath.Join(dir, "transcript.json"), data, 0o644)
}

func (r *Record) saveCompressed(dir string, data []byte) error {
	os.Remove(filepath.Join(dir, "transcript.json"))

	f, err := os.Create(filepath.Join(dir, "transcript.json.gz"))
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// LoadRecord reads a record from baseDir.
func LoadRecord(baseDir, id string) (*Record, error) {
	dir, err := recordDir(baseDir, id)
	if err != nil {
		return nil, err
	}

	data, err := loadCompressed(filepath.Join(dir, "transcript.json.gz"))
	if err != nil {
		data, err = os.ReadFile(filepath.Join(dir, "transcript.json"))
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ErrRecordNotFound
			}
			return nil, err
		}
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func loadCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	return io.ReadAll(gz)
}
