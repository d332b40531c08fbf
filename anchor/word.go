package anchor

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// WordStart returns the byte offset of the start of the word containing pos.
// A position at or past the end selects the last word.
func WordStart(history string, pos int) int {
	if history == "" || pos <= 0 {
		return 0
	}
	if pos >= len(history) {
		pos = len(history) - 1
	}
	for pos > 0 && !isWordBreak(history[pos-1]) {
		pos--
	}
	return pos
}

func isWordBreak(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '.', ',', '!', '?':
		return true
	}
	return false
}

// ByteOffset converts a character (rune) index into a byte offset in
// history, for hosts that count displayed characters.
func ByteOffset(history string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	off := 0
	for i := 0; i < runeIndex && off < len(history); i++ {
		_, size := utf8.DecodeRuneInString(history[off:])
		off += size
	}
	return off
}

// Unit says what a position counts: bytes of History or displayed
// characters.
type Unit int

const (
	Bytes Unit = iota
	Chars
)

// ParseUnit accepts "", "byte" or "bytes" for Bytes and "char", "chars" or
// "rune" for Chars.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "byte", "bytes":
		return Bytes, nil
	case "char", "chars", "rune":
		return Chars, nil
	}
	return Bytes, fmt.Errorf("unknown position unit %q", s)
}

// Offset converts pos, counted in u, into a byte offset in history.
func (u Unit) Offset(history string, pos int) int {
	if u == Chars {
		return ByteOffset(history, pos)
	}
	return pos
}

// CharIndex converts a byte offset into a character index.
func CharIndex(history string, offset int) int {
	return utf8.RuneCountInString(history[:clamp(offset, history)])
}
