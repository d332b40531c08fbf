// Package source provides the caption snapshot sources polled by a session.
//
// A Source returns whatever caption text is visible right now. Sources do
// not track history; that is the job of transcript.Reconciler. An empty
// result or an error both mean "nothing new this tick".
//
// Available sources:
//
//   - FileSource re-reads a text file
//   - CommandSource runs a helper command and reads its stdout
//   - HTTPSource polls a URL serving plain text or {"text": "..."}
//   - Replay steps through a recorded YAML script
//   - Func adapts a plain function
//
// New picks one of these from a kind and target string, as stored in the
// configuration file.
package source
