package source

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ReplayScript is a recorded sequence of caption snapshots.
//
//	name: standup
//	loop: false
//	snapshots:
//	  - "Good morning"
//	  - "Good morning everyone"
type ReplayScript struct {
	Name      string   `yaml:"name"`
	Loop      bool     `yaml:"loop"`
	Snapshots []string `yaml:"snapshots"`
}

// Replay steps through a script, returning one snapshot per Fetch. Once
// the script is exhausted it keeps returning the last snapshot, or starts
// over when Loop is set.
type Replay struct {
	mu     sync.Mutex
	script ReplayScript
	next   int
}

// NewReplay creates a replay over snapshots.
func NewReplay(snapshots ...string) *Replay {
	return &Replay{script: ReplayScript{Snapshots: snapshots}}
}

// LoadReplay reads a YAML replay script.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay script: %w", err)
	}
	return ParseReplay(data)
}

// ParseReplay decodes a YAML replay script.
func ParseReplay(data []byte) (*Replay, error) {
	var script ReplayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(script.Snapshots) == 0 {
		return nil, fmt.Errorf("replay script %q has no snapshots", script.Name)
	}
	return &Replay{script: script}, nil
}

// Fetch implements Source.
func (r *Replay) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.script.Snapshots)
	if n == 0 {
		return "", nil
	}
	if r.next >= n {
		if !r.script.Loop {
			return Normalize(r.script.Snapshots[n-1]), nil
		}
		r.next = 0
	}
	s := r.script.Snapshots[r.next]
	r.next++
	return Normalize(s), nil
}

// Done reports whether every snapshot has been returned at least once.
func (r *Replay) Done() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next >= len(r.script.Snapshots)
}

// Name returns the script name.
func (r *Replay) Name() string {
	return r.script.Name
}
