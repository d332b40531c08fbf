package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/randalmurphal/captionmirror/anchor"
	"github.com/randalmurphal/captionmirror/auth"
	"github.com/randalmurphal/captionmirror/config"
	"github.com/randalmurphal/captionmirror/deliver"
	cmerrors "github.com/randalmurphal/captionmirror/errors"
	"github.com/randalmurphal/captionmirror/hotkey"
	"github.com/randalmurphal/captionmirror/server"
	"github.com/randalmurphal/captionmirror/session"
	"github.com/randalmurphal/captionmirror/source"
	"github.com/randalmurphal/captionmirror/transcript"
)

const closeTimeout = 5 * time.Second

func runCmd(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	kind := fs.String("source-kind", "", "caption source kind: "+strings.Join(source.Kinds(), ", "))
	target := fs.String("source", "", "caption file, command, URL or replay script")
	interval := fs.String("interval", "", "poll interval, e.g. 400ms")
	targets := fs.String("deliver", "", "comma-separated delivery targets")
	addr := fs.String("server", "", "control server listen address")
	resume := fs.String("resume", "", "resume a saved transcript by ID")
	render := fs.Bool("render", false, "print History after every change")
	stdinKeys := fs.Bool("keys", false, "read key bindings and commands from stdin")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := fs.String("log-format", "", "log format: text, json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := e.settings(map[string]string{
		config.KeySourceKind:     *kind,
		config.KeySourceTarget:   *target,
		config.KeyPollInterval:   *interval,
		config.KeyDeliverTargets: *targets,
		config.KeyServerAddr:     *addr,
		config.KeyLogLevel:       *logLevel,
		config.KeyLogFormat:      *logFormat,
	})
	if err != nil {
		return err
	}

	src, err := source.New(s.SourceKind, s.SourceTarget, s.SourceToken)
	if err != nil {
		return cmerrors.NewSourceUnavailableError(s.SourceKind, err)
	}

	d, err := deliver.New(s.DeliverTargets, deliver.Options{
		Credentials: deliver.Credentials{
			GitHubToken: s.GitHubToken,
			GitLabToken: s.GitLabToken,
			GitLabURL:   s.GitLabURL,
		},
		Stdout: e.stdout,
		Logger: e.logger,
	})
	if err != nil {
		return err
	}

	var store *transcript.FileStore
	if s.SaveTranscript {
		if store, err = transcript.NewFileStore(transcript.StoreConfig{BaseDir: s.TranscriptDir}); err != nil {
			return fmt.Errorf("open transcript store: %w", err)
		}
	}

	cfg := session.Config{
		Source:       src,
		SourceName:   s.SourceKind,
		Deliverer:    d,
		PollInterval: s.PollInterval,
		Reconciler:   s.ReconcilerConfig(),
		Logger:       e.logger,
	}
	if store != nil {
		cfg.Store = store
	}
	if *render {
		viewer := transcript.NewViewer(!s.NoColor, s.Palette)
		cfg.AfterTick = func(st session.State) {
			if st.Change.Mutated() {
				_ = viewer.RenderHistory(e.stdout, st.History, st.Anchor)
			}
		}
	}

	sess, err := session.New(cfg)
	if err != nil {
		return err
	}

	if *resume != "" {
		if store == nil {
			return cmerrors.NewInvalidConfigError(config.KeyTranscriptSave, errors.New("resume needs transcript saving enabled"))
		}
		rec, err := store.Load(*resume)
		if err != nil {
			return cmerrors.WrapTranscriptError(err, *resume)
		}
		sess.Resume(rec)
	}

	dispatcher := hotkey.NewDispatcher()
	if err := sess.BindHotkeys(ctx, dispatcher, s.CopyKey, s.ClearKey); err != nil {
		return cmerrors.NewInvalidConfigError(config.KeyHotkeyCopy, err)
	}

	serverErr := make(chan error, 1)
	if s.ServerAddr != "" {
		srv := server.New(sess, server.Config{
			Addr:       s.ServerAddr,
			JWT:        auth.JWTConfig{Secret: []byte(s.ServerSecret), Issuer: config.AppName},
			Keys:       auth.NewKeyRing(auth.APIKeyConfig{}, s.ServerAPIKeys...),
			Dispatcher: dispatcher,
			Logger:     e.logger,
		})
		go func() { serverErr <- srv.ListenAndServe(ctx) }()
	}

	if *stdinKeys {
		go readCommands(ctx, e, sess, dispatcher)
	}

	e.logger.Info("mirroring captions",
		"session_id", sess.ID(),
		"source", s.SourceKind,
		"copy_key", s.CopyKey.String(),
		"clear_key", s.ClearKey.String(),
	)

	runErr := make(chan error, 1)
	go func() { runErr <- sess.Run(ctx) }()

	select {
	case err = <-runErr:
	case err = <-serverErr:
	}

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
	defer cancel()
	if cerr := sess.Close(closeCtx); cerr != nil {
		e.logger.Warn("close session", "error", cerr)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// readCommands reads one command per line: a key binding such as
// "ctrl+shift+a", or a command: copy, clear, save, show, select N or anchor N.
// N counts characters of History.
func readCommands(ctx context.Context, e *env, sess *session.Session, d *hotkey.Dispatcher) {
	sc := bufio.NewScanner(e.stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		if err := handleCommand(ctx, e.stdout, sess, d, sc.Text()); err != nil {
			fmt.Fprintln(e.stderr, err)
		}
	}
}

func handleCommand(ctx context.Context, w io.Writer, sess *session.Session, d *hotkey.Dispatcher, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	switch name {
	case "copy":
		sess.CopyAsync(ctx)
		return nil
	case "clear":
		return sess.Clear()
	case "save":
		rec, err := sess.Save()
		if err != nil {
			return err
		}
		if rec == nil {
			_, err = fmt.Fprintln(w, "nothing to save")
			return err
		}
		_, err = fmt.Fprintf(w, "saved %s\n", rec.ID)
		return err
	case "show":
		st := sess.Snapshot()
		_, err := fmt.Fprintf(w, "anchor %d (user=%v): %s\n", st.Anchor, st.UserAnchor, sess.Excerpt())
		return err
	case "select", "anchor":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s OFFSET", name)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if name == "select" {
			sess.SelectIn(n, anchor.Chars)
		} else {
			sess.SetAnchorIn(n, anchor.Chars)
		}
		return nil
	}

	ev, err := hotkey.Parse(line)
	if err != nil {
		return err
	}
	if !d.Handle(ev) {
		return fmt.Errorf("%s is not bound", ev)
	}
	return nil
}
