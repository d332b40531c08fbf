package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Palette holds the colors used to render History. Colors are "#rrggbb".
type Palette struct {
	Text               string
	Background         string
	SelectedBackground string
}

// DefaultPalette matches the stock caption window colors.
var DefaultPalette = Palette{
	Text:               "#000000",
	Background:         "#ffffff",
	SelectedBackground: "#a8df8e",
}

// Viewer renders live History and saved transcripts
type Viewer struct {
	colorEnabled bool
	palette      Palette
}

// NewViewer creates a viewer
func NewViewer(colorEnabled bool, palette Palette) *Viewer {
	return &Viewer{colorEnabled: colorEnabled, palette: palette}
}

// RenderHistory writes history with the region from anchor to the end
// highlighted. Without color the anchor is shown as a "▶" marker.
func (v *Viewer) RenderHistory(w io.Writer, history string, anchor int) error {
	anchor = max(0, min(anchor, len(history)))
	before, after := history[:anchor], history[anchor:]

	if !v.colorEnabled {
		_, err := fmt.Fprintf(w, "%s▶%s\n", before, after)
		return err
	}

	fg := ansiColor(v.palette.Text, 38)
	_, err := fmt.Fprintf(w, "%s%s%s%s%s%s\x1b[0m\n",
		fg, ansiColor(v.palette.Background, 48), before,
		fg, ansiColor(v.palette.SelectedBackground, 48), after)
	return err
}

// ExportMarkdown exports a saved transcript to markdown format
func (v *Viewer) ExportMarkdown(w io.Writer, r *Record) error {
	fmt.Fprintf(w, "# Transcript: %s\n\n", r.ID)

	fmt.Fprintf(w, "| Field | Value |\n")
	fmt.Fprintf(w, "|-------|-------|\n")
	fmt.Fprintf(w, "| Session | %s |\n", r.Metadata.SessionID)
	if r.Metadata.Source != "" {
		fmt.Fprintf(w, "| Source | %s |\n", r.Metadata.Source)
	}
	fmt.Fprintf(w, "| Started | %s |\n", r.Metadata.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "| Ended | %s |\n", r.Metadata.EndedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "| Duration | %s |\n", r.Metadata.Duration().Round(time.Second))
	fmt.Fprintf(w, "| Reason | %s |\n", title(string(r.Metadata.Reason)))
	fmt.Fprintf(w, "| Characters | %d |\n", r.Metadata.Characters)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "## Captions\n\n%s\n", r.History)
	return nil
}

// ExportJSON exports to JSON format
func (v *Viewer) ExportJSON(w io.Writer, r *Record) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// FormatMetaList formats a list of metadata for display
func (v *Viewer) FormatMetaList(w io.Writer, metas []Meta) error {
	if len(metas) == 0 {
		fmt.Fprintln(w, "No transcripts found.")
		return nil
	}

	fmt.Fprintf(w, "%-24s %-10s %-20s %10s %10s\n",
		"ID", "REASON", "STARTED", "DURATION", "CHARS")
	fmt.Fprintln(w, strings.Repeat("-", 78))

	for _, m := range metas {
		fmt.Fprintf(w, "%-24s %-10s %-20s %10s %10d\n",
			truncate(m.ID, 24),
			m.Reason,
			m.StartedAt.Format("2006-01-02 15:04"),
			m.Duration().Round(time.Second),
			m.Characters)
	}

	fmt.Fprintf(w, "\nTotal: %d transcripts\n", len(metas))
	return nil
}

// FormatResults formats search results for display
func (v *Viewer) FormatResults(w io.Writer, results []SearchResult) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No matches.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(w, "%s:%d  %s\n", r.ID, r.Offset, r.Snippet)
	}
	return nil
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

// truncate shortens a string to max length
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// ansiColor builds a 24-bit SGR sequence; layer is 38 (fg) or 48 (bg).
// Malformed colors produce no escape.
func ansiColor(hex string, layer int) string {
	rgb, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, rgb[0], rgb[1], rgb[2])
}

func parseHexColor(s string) ([3]uint8, bool) {
	var rgb [3]uint8
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return rgb, false
	}
	for i := range 3 {
		n, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return rgb, false
		}
		rgb[i] = uint8(n)
	}
	return rgb, true
}

// ValidColor reports whether s is a "#rrggbb" color.
func ValidColor(s string) bool {
	_, ok := parseHexColor(s)
	return ok
}
