// Package testutil provides helpers shared by captionmirror tests: contexts,
// temporary files, a caption source the test can drive and deliverers that
// record or block.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TempFile creates a temporary file with the given content and returns its
// path. It is removed when the test ends.
func TempFile(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to create temp file %s: %v", name, err)
	}
	return path
}

// TempFileString creates a temporary file with string content.
func TempFileString(t *testing.T, name, content string) string {
	t.Helper()
	return TempFile(t, name, []byte(content))
}

// ReplayScript writes a replay YAML file holding snapshots and returns its
// path.
func ReplayScript(t *testing.T, snapshots ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("name: test\nsnapshots:\n")
	for _, s := range snapshots {
		b.WriteString("  - ")
		b.WriteString(quote(s))
		b.WriteString("\n")
	}
	return TempFileString(t, "replay.yaml", b.String())
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}
