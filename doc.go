// Package captionmirror mirrors live captions into a growing transcript.
//
// Caption windows only show the last few lines of what is being said, and
// they rewrite themselves as the recognizer revises its guesses. This module
// polls such a window, merges every snapshot into one continuous History and
// lets the user copy History from a chosen word onward with a hotkey.
//
// The module is organized into subpackages:
//
//   - transcript: the Reconciler that merges snapshots, plus saved transcript
//     storage, search and rendering
//   - anchor: the copy anchor and the overlap guard around copies
//   - session: one running mirror tying source, reconciler, anchor and
//     delivery together
//   - source: caption sources (file, command, HTTP feed, recorded replay)
//   - deliver: delivery targets (clipboard, file, webhook, Slack, gist,
//     GitLab snippet)
//   - hotkey: key binding parsing and dispatch
//   - server: HTTP control API for remote hotkeys and renderers
//   - auth: control tokens and API keys
//   - config: layered configuration
//   - errors: user-facing CLI errors
//   - http: shared HTTP client with retries
//   - runner: external command execution
//   - testutil: test helpers
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/captionmirror/deliver"
//	    "github.com/randalmurphal/captionmirror/session"
//	    "github.com/randalmurphal/captionmirror/source"
//	)
//
//	sess, err := session.New(session.Config{
//	    Source:    source.NewFileSource("/tmp/live-captions.txt"),
//	    Deliverer: deliver.NewLogDeliverer(nil),
//	})
//	if err != nil {
//	    return err
//	}
//	defer sess.Close(ctx)
//
//	go sess.Run(ctx)
//
//	// Later, when the copy hotkey is pressed:
//	sess.SetAnchor(offset)
//	res, err := sess.Copy(ctx)
//
// The captionmirror command in cmd/captionmirror wires all of this together
// from configuration.
package captionmirror
