// Package config resolves captionmirror settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags
//  2. Environment variables (CAPTIONMIRROR_DISPLAY_TEXT_SIZE=14)
//  3. Local config (.captionmirror.yaml in the working directory)
//  4. Global config (~/.config/captionmirror/config.yaml)
//  5. Built-in defaults
//
// Files are nested YAML and keys are addressed with dots:
//
//	source:
//	  kind: command
//	  target: lcdump --window "Live Captions"
//	display:
//	  text_size: 14
//	  dark_mode: true
//	deliver:
//	  targets: [clipboard, file:/tmp/excerpts.txt]
//
// Each resolved value tracks where it came from:
//
//	r := config.NewAppResolver().Resolve()
//	r.GetWithSource("display.text_size") // "14", "global"
//
// Load turns a Resolved into typed Settings and validates every value.
// SaveConfig writes single keys back to either file.
package config
