// Package hotkey parses key bindings and dispatches key events to the copy
// and clear actions.
//
// Registering global hotkeys is the host's job. The host reports key
// presses as KeyEvent values and calls Dispatcher.Handle; the control
// server does the same for keys forwarded over HTTP.
package hotkey
