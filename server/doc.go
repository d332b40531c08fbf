// Package server exposes a running session over HTTP so other programs can
// drive it: a hotkey daemon forwarding global shortcuts, a stream deck, or a
// renderer on another machine.
//
// Routes:
//
//	GET  /healthz   liveness, no auth
//	GET  /history   History and anchor state (scope read)
//	POST /anchor    {"offset": n} anchor at a byte offset (scope control)
//	POST /select    {"pos": n} anchor at the word containing pos
//	POST /copy      deliver History from the anchor
//	POST /clear     save and clear History
//	POST /save      save History as a manual transcript
//	POST /keys      {"key": "ctrl+shift+a"} dispatch a key event
//
// Positions are byte offsets unless the request carries "unit": "char", in
// which case they count displayed characters. State responses report the
// anchor both ways, as "anchor" and "anchor_chars".
//
// Requests authenticate with "Authorization: Bearer <credential>", where the
// credential is a control token or an API key. API keys grant every scope.
package server
