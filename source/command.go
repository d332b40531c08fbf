package source

import (
	"context"
	"fmt"
	"time"

	"github.com/randalmurphal/captionmirror/runner"
)

// DefaultCommandTimeout bounds one run of a helper command.
const DefaultCommandTimeout = 2 * time.Second

// CommandSource runs a helper that prints the current caption text on
// stdout, such as a platform accessibility dumper.
type CommandSource struct {
	Name    string
	Args    []string
	Timeout time.Duration
	Runner  runner.CommandRunner
}

// NewCommandSource creates a source from a whitespace-separated command
// line.
func NewCommandSource(command string) (*CommandSource, error) {
	name, args := runner.Split(command)
	if name == "" {
		return nil, fmt.Errorf("empty caption command")
	}
	return &CommandSource{
		Name:    name,
		Args:    args,
		Timeout: DefaultCommandTimeout,
		Runner:  runner.NewExecRunner(),
	}, nil
}

// Fetch implements Source.
func (s *CommandSource) Fetch(ctx context.Context) (string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r := s.Runner
	if r == nil {
		r = runner.NewExecRunner()
	}

	out, err := r.Run(ctx, "", s.Name, s.Args...)
	if err != nil {
		return "", fmt.Errorf("caption command: %w", err)
	}
	return Normalize(out), nil
}
