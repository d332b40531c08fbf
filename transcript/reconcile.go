package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Reconciler tuning defaults.
const (
	// DefaultPatternLen is the fingerprint length, in characters, used to
	// locate the continuation point between two snapshots.
	DefaultPatternLen = 20

	// DefaultMaxShift bounds how far back from the end of the previous
	// snapshot the fingerprint search walks.
	DefaultMaxShift = 200
)

// DisjointPolicy selects what happens to History when a new snapshot shares
// no fingerprint with the previous one.
type DisjointPolicy int

const (
	// DisjointAppend appends a space and the new snapshot as a new segment.
	DisjointAppend DisjointPolicy = iota

	// DisjointReplace replaces History with the new snapshot.
	DisjointReplace
)

// ReconcilerConfig holds reconciler tuning. Zero values select the defaults.
type ReconcilerConfig struct {
	PatternLen int
	MaxShift   int
	Disjoint   DisjointPolicy
}

func (c ReconcilerConfig) patternLen() int {
	if c.PatternLen <= 0 {
		return DefaultPatternLen
	}
	return c.PatternLen
}

func (c ReconcilerConfig) maxShift() int {
	if c.MaxShift <= 0 {
		return DefaultMaxShift
	}
	return c.MaxShift
}

// Change reports which branch an Update took.
type Change int

const (
	// ChangeNone means no update was performed.
	ChangeNone Change = iota
	// ChangeReplaced means History was replaced by the snapshot.
	ChangeReplaced
	// ChangeShrunk means the snapshot was shorter than the previous one.
	ChangeShrunk
	// ChangeTrivial means the snapshot grew by at most one character.
	ChangeTrivial
	// ChangeDisjoint means no fingerprint matched.
	ChangeDisjoint
	// ChangeSpliced means History was cut at the fingerprint and the new tail attached.
	ChangeSpliced
	// ChangeAppended means the fingerprint matched but was absent from History.
	ChangeAppended
)

var changeNames = map[Change]string{
	ChangeNone:     "none",
	ChangeReplaced: "replaced",
	ChangeShrunk:   "shrunk",
	ChangeTrivial:  "trivial",
	ChangeDisjoint: "disjoint",
	ChangeSpliced:  "spliced",
	ChangeAppended: "appended",
}

func (c Change) String() string {
	if name, ok := changeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Mutated reports whether History was rewritten.
func (c Change) Mutated() bool {
	switch c {
	case ChangeReplaced, ChangeDisjoint, ChangeSpliced, ChangeAppended:
		return true
	default:
		return false
	}
}

// Reconciler merges successive caption snapshots into one growing History.
//
// A Reconciler is not safe for concurrent use; callers serialize access.
type Reconciler struct {
	cfg      ReconcilerConfig
	history  string
	previous string
}

// NewReconciler creates an empty reconciler.
func NewReconciler(cfg ReconcilerConfig) *Reconciler {
	return &Reconciler{cfg: cfg}
}

// History returns the reconciled transcript.
func (r *Reconciler) History() string {
	return r.history
}

// Previous returns the snapshot seen by the last Update.
func (r *Reconciler) Previous() string {
	return r.previous
}

// Reset clears History and the previous snapshot together.
func (r *Reconciler) Reset() {
	r.history = ""
	r.previous = ""
}

// Restore reinstates a saved state, e.g. when resuming a transcript.
func (r *Reconciler) Restore(history, previous string) {
	r.history = history
	r.previous = previous
}

// Update folds snapshot into History. It never fails: the worst outcome is a
// continuation being treated as a disjoint segment.
func (r *Reconciler) Update(snapshot string) Change {
	if r.previous == "" {
		r.history = snapshot
		r.previous = snapshot
		return ChangeReplaced
	}

	prev := []rune(r.previous)
	curr := []rune(snapshot)
	prevLen, currLen := len(prev), len(curr)

	// Older text scrolled out of the source window.
	if currLen < prevLen {
		r.previous = snapshot
		return ChangeShrunk
	}

	// Single-character revisions are noise.
	if currLen <= prevLen+1 {
		r.previous = snapshot
		return ChangeTrivial
	}

	patternLen := r.cfg.patternLen()
	if prevLen < patternLen {
		r.history = snapshot
		r.previous = snapshot
		return ChangeReplaced
	}

	pattern, matchPos := r.findContinuation(prev, curr)

	var change Change
	switch {
	case matchPos < 0 && r.cfg.Disjoint == DisjointReplace:
		r.history = snapshot
		change = ChangeDisjoint
	case matchPos < 0:
		r.history += " " + snapshot
		change = ChangeDisjoint
	default:
		newPart := string(curr[matchPos:])
		if hpos := strings.LastIndex(r.history, pattern); hpos >= 0 {
			r.history = r.history[:hpos] + newPart
			change = ChangeSpliced
		} else {
			r.history += newPart
			change = ChangeAppended
		}
	}

	r.previous = snapshot
	return change
}

// findContinuation walks a fixed-length window backward from the end of
// prev and returns the first window found (case-insensitively) in curr,
// with its rune position in curr. matchPos is -1 when nothing matched.
func (r *Reconciler) findContinuation(prev, curr []rune) (pattern string, matchPos int) {
	patternLen := r.cfg.patternLen()
	maxShift := min(len(prev)-patternLen, r.cfg.maxShift())

	folded := foldRunes(curr)

	for shift := 0; shift <= maxShift; shift++ {
		end := len(prev) - shift
		window := prev[end-patternLen : end]

		idx := strings.Index(folded, foldRunes(window))
		if idx < 0 {
			continue
		}
		// Folding maps rune to rune, so the rune index in the folded text is
		// the rune index in the original.
		return string(window), utf8.RuneCountInString(folded[:idx])
	}

	return "", -1
}

// foldRunes lower-cases rune by rune so the result has exactly as many runes
// as the input.
func foldRunes(rs []rune) string {
	var sb strings.Builder
	sb.Grow(len(rs))
	for _, r := range rs {
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}
