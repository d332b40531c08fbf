package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/randalmurphal/captionmirror/config"
	cmerrors "github.com/randalmurphal/captionmirror/errors"
	"github.com/randalmurphal/captionmirror/transcript"
)

// openStore resolves settings and opens the transcript store.
func openStore(e *env, dir string) (*config.Settings, *transcript.FileStore, error) {
	s, err := e.settings(map[string]string{config.KeyTranscriptDir: dir})
	if err != nil {
		return nil, nil, err
	}
	store, err := transcript.NewFileStore(transcript.StoreConfig{BaseDir: s.TranscriptDir})
	if err != nil {
		return nil, nil, fmt.Errorf("open transcript store: %w", err)
	}
	return s, store, nil
}

func listCmd(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	dir := fs.String("dir", "", "transcript directory")
	sessionID := fs.String("session", "", "only transcripts of this session")
	reason := fs.String("reason", "", "only transcripts closed for this reason (cleared, shutdown, manual)")
	limit := fs.Int("limit", 20, "maximum number of transcripts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, store, err := openStore(e, *dir)
	if err != nil {
		return err
	}
	metas, err := store.List(transcript.ListFilter{
		SessionID: *sessionID,
		Reason:    transcript.EndReason(*reason),
		Limit:     *limit,
	})
	if err != nil {
		return err
	}
	return transcript.NewViewer(!s.NoColor, s.Palette).FormatMetaList(e.stdout, metas)
}

func showCmd(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	dir := fs.String("dir", "", "transcript directory")
	format := fs.String("format", "text", "output format: text, markdown, json")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: captionmirror show [-format f] ID")
	}
	id := fs.Arg(0)

	s, store, err := openStore(e, *dir)
	if err != nil {
		return err
	}
	rec, err := store.Load(id)
	if err != nil {
		return cmerrors.WrapTranscriptError(err, id)
	}

	viewer := transcript.NewViewer(!s.NoColor, s.Palette)
	switch *format {
	case "text":
		return viewer.RenderHistory(e.stdout, rec.History, rec.Anchor)
	case "markdown", "md":
		return viewer.ExportMarkdown(e.stdout, rec)
	case "json":
		return viewer.ExportJSON(e.stdout, rec)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func searchCmd(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	dir := fs.String("dir", "", "transcript directory")
	caseSensitive := fs.Bool("case-sensitive", false, "match case exactly")
	maxResults := fs.Int("max", 50, "maximum number of matches")
	surround := fs.Int("context", 30, "characters of context around each match")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: captionmirror search QUERY")
	}

	s, store, err := openStore(e, *dir)
	if err != nil {
		return err
	}
	results, err := transcript.NewSearcher(store).SearchContent(strings.Join(fs.Args(), " "), transcript.SearchOptions{
		CaseSensitive: *caseSensitive,
		MaxResults:    *maxResults,
		Context:       *surround,
	})
	if err != nil {
		return err
	}
	return transcript.NewViewer(!s.NoColor, s.Palette).FormatResults(e.stdout, results)
}

func pruneCmd(_ context.Context, e *env, args []string) error {
	defaults := transcript.DefaultRetentionConfig()

	fs := flag.NewFlagSet("prune", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	dir := fs.String("dir", "", "transcript directory")
	olderThan := fs.Duration("older-than", defaults.MaxAge, "remove transcripts that ended before this long ago")
	keep := fs.Int("keep", defaults.KeepMin, "always keep this many of the newest transcripts")
	all := fs.Bool("all", false, "also remove manually saved transcripts")
	dryRun := fs.Bool("dry-run", false, "only report what would be removed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, store, err := openStore(e, *dir)
	if err != nil {
		return err
	}
	res, err := store.Prune(transcript.RetentionConfig{
		MaxAge:     *olderThan,
		KeepMin:    *keep,
		KeepManual: !*all,
	}, time.Now(), *dryRun)
	if err != nil {
		return err
	}

	verb := "removed"
	if *dryRun {
		verb = "would remove"
	}
	for _, id := range res.Deleted {
		fmt.Fprintf(e.stdout, "%s %s\n", verb, id)
	}
	for _, msg := range res.Errors {
		e.logger.Warn("prune", "error", msg)
	}
	fmt.Fprintf(e.stdout, "%s %d transcripts (%d bytes), kept %d\n", verb, len(res.Deleted), res.SpaceSaved, len(res.Kept))
	return nil
}
