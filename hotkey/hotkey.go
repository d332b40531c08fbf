package hotkey

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default bindings.
const (
	DefaultCopy  = "ctrl+shift+a"
	DefaultClear = "ctrl+shift+d"
)

var (
	// ErrInvalidBinding indicates a binding string could not be parsed.
	ErrInvalidBinding = errors.New("invalid hotkey")

	// ErrConflict indicates two actions share one binding.
	ErrConflict = errors.New("hotkey already bound")
)

// Modifier is a bit set of modifier keys.
type Modifier uint8

// Modifier bits.
const (
	ModCtrl Modifier = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModShift, "shift"},
	{ModAlt, "alt"},
	{ModSuper, "super"},
}

var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"shift":   ModShift,
	"alt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"meta":    ModSuper,
}

var namedKeys = map[string]string{
	"space":     "space",
	"enter":     "enter",
	"return":    "enter",
	"tab":       "tab",
	"esc":       "escape",
	"escape":    "escape",
	"backspace": "backspace",
	"delete":    "delete",
	"del":       "delete",
	"insert":    "insert",
	"ins":       "insert",
	"home":      "home",
	"end":       "end",
	"pageup":    "pageup",
	"pagedown":  "pagedown",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
}

// fold lower-cases a key name. A Caser is stateful, so each call gets its
// own.
func fold(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Binding is a key plus the modifiers held with it.
type Binding struct {
	Mods Modifier
	Key  string
}

// KeyEvent is a key press reported by the host.
type KeyEvent = Binding

// Parse reads a binding such as "ctrl+shift+a" or "Alt+F9". Modifier and
// key names are case-insensitive. At least one modifier is required so a
// global binding never swallows plain typing.
func Parse(s string) (Binding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	if len(parts) < 2 {
		return Binding{}, fmt.Errorf("%w %q: need at least one modifier and a key", ErrInvalidBinding, s)
	}

	var b Binding
	for _, p := range parts[:len(parts)-1] {
		name := fold(p)
		mod, ok := modifierAliases[name]
		if !ok {
			return Binding{}, fmt.Errorf("%w %q: unknown modifier %q", ErrInvalidBinding, s, p)
		}
		if b.Mods&mod != 0 {
			return Binding{}, fmt.Errorf("%w %q: repeated modifier %q", ErrInvalidBinding, s, p)
		}
		b.Mods |= mod
	}

	key, err := parseKey(parts[len(parts)-1])
	if err != nil {
		return Binding{}, fmt.Errorf("%w %q: %v", ErrInvalidBinding, s, err)
	}
	b.Key = key
	return b, nil
}

// MustParse is Parse that panics on error. Intended for constants.
func MustParse(s string) Binding {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

func parseKey(raw string) (string, error) {
	name := fold(raw)
	if name == "" {
		return "", fmt.Errorf("missing key")
	}
	if _, isMod := modifierAliases[name]; isMod {
		return "", fmt.Errorf("key %q is a modifier", raw)
	}
	if canonical, ok := namedKeys[name]; ok {
		return canonical, nil
	}
	if isFunctionKey(name) {
		return name, nil
	}
	if len([]rune(name)) == 1 {
		return name, nil
	}
	return "", fmt.Errorf("unknown key %q", raw)
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || name[0] != 'f' {
		return false
	}
	n := 0
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= 1 && n <= 24
}

// String formats the binding in canonical form, e.g. "ctrl+shift+a".
func (b Binding) String() string {
	var parts []string
	for _, m := range modifierNames {
		if b.Mods&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, b.Key), "+")
}

// IsZero reports whether the binding is unset.
func (b Binding) IsZero() bool {
	return b.Mods == 0 && b.Key == ""
}
