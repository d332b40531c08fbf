// Command captionmirror mirrors live captions into a growing transcript and
// copies it from a chosen word on demand.
//
// Usage:
//
//	captionmirror run [flags]              poll captions until interrupted
//	captionmirror list [-session ID]       list saved transcripts
//	captionmirror show [-format f] ID      print a saved transcript
//	captionmirror search QUERY             search saved transcripts
//	captionmirror prune [-older-than d]    remove expired transcripts
//	captionmirror token [-scope s] NAME    issue a control token
//	captionmirror token -api-key           generate an API key
//	captionmirror config list|get|set      inspect or change configuration
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/randalmurphal/captionmirror/config"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"run", "poll captions and serve hotkeys", runCmd},
	{"list", "list saved transcripts", listCmd},
	{"show", "print a saved transcript", showCmd},
	{"search", "search saved transcripts", searchCmd},
	{"prune", "remove expired transcripts", pruneCmd},
	{"token", "issue control tokens and API keys", tokenCmd},
	{"config", "inspect or change configuration", configCmd},
}

// env carries what every subcommand needs.
type env struct {
	stdout   io.Writer
	stderr   io.Writer
	stdin    io.Reader
	resolver *config.Resolver
	logger   *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := &env{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		stdin:    os.Stdin,
		resolver: config.NewAppResolver(),
	}

	if err := dispatch(ctx, e, os.Args[1:]); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "captionmirror:", err)
			os.Exit(1)
		}
	}
}

func dispatch(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(e.stderr)
		return nil
	}

	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, e, args[1:])
		}
	}
	usage(e.stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: captionmirror <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
}

// newLogger builds the slog handler named by format at level.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// settings resolves configuration with flag overrides and sets up logging.
func (e *env) settings(flags map[string]string) (*config.Settings, error) {
	s, err := config.Load(e.resolver.ResolveWithFlags(flags))
	if err != nil {
		return nil, err
	}
	e.logger = newLogger(e.stderr, s.LogLevel, s.LogFormat)
	slog.SetDefault(e.logger)
	return s, nil
}
