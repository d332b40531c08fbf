package transcript

import (
	"strings"
	"testing"
)

func TestReconciler_FirstUpdate(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})

	change := r.Update("hello")

	if change != ChangeReplaced {
		t.Errorf("change = %s, want %s", change, ChangeReplaced)
	}
	if got := r.History(); got != "hello" {
		t.Errorf("History() = %q, want %q", got, "hello")
	}
	if got := r.Previous(); got != "hello" {
		t.Errorf("Previous() = %q, want %q", got, "hello")
	}
}

func TestReconciler_Idempotent(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	s := "this caption is comfortably longer than twenty characters"

	r.Update(s)
	before := r.History()

	change := r.Update(s)

	if change != ChangeTrivial {
		t.Errorf("second Update change = %s, want %s", change, ChangeTrivial)
	}
	if r.History() != before {
		t.Errorf("History changed on repeated snapshot: %q -> %q", before, r.History())
	}
}

func TestReconciler_PureExtension(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	s1 := "the meeting will start in five minutes everyone"
	suffix := " so please find a seat and mute yourselves"
	s2 := s1 + suffix

	r.Update(s1)
	first := r.History()

	change := r.Update(s2)

	if change != ChangeSpliced {
		t.Errorf("change = %s, want %s", change, ChangeSpliced)
	}
	if !strings.HasPrefix(r.History(), first) {
		t.Errorf("History %q does not start with %q", r.History(), first)
	}
	if !strings.HasSuffix(r.History(), suffix) {
		t.Errorf("History %q does not end with %q", r.History(), suffix)
	}
	if r.History() != s2 {
		t.Errorf("History = %q, want %q", r.History(), s2)
	}
}

func TestReconciler_ShrinkIsNoOp(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	r.Update("the first line of captions is right here")
	before := r.History()

	change := r.Update("line of captions is right here")

	if change != ChangeShrunk {
		t.Errorf("change = %s, want %s", change, ChangeShrunk)
	}
	if r.History() != before {
		t.Errorf("History = %q, want unchanged %q", r.History(), before)
	}
	if r.Previous() != "line of captions is right here" {
		t.Errorf("Previous() = %q, want shrunk snapshot", r.Previous())
	}
}

func TestReconciler_OneCharGrowthIsTrivial(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	r.Update("we are almost done with this part")
	before := r.History()

	change := r.Update("we are almost done with this part.")

	if change != ChangeTrivial {
		t.Errorf("change = %s, want %s", change, ChangeTrivial)
	}
	if r.History() != before {
		t.Errorf("History = %q, want unchanged %q", r.History(), before)
	}
	if r.Previous() != "we are almost done with this part." {
		t.Errorf("Previous() = %q, want updated snapshot", r.Previous())
	}
}

func TestReconciler_ShortPreviousReplaces(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	r.Update("short start")

	change := r.Update("short start and then a good deal more")

	if change != ChangeReplaced {
		t.Errorf("change = %s, want %s", change, ChangeReplaced)
	}
	if r.History() != "short start and then a good deal more" {
		t.Errorf("History = %q", r.History())
	}
}

func TestReconciler_InsertedWordRewritesTail(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	prev := "the quick brown fox jumps over the lazy dog end"
	next := "the quick brown fox jumps over the very lazy dog end today"

	r.Update(prev)
	change := r.Update(next)

	if change != ChangeSpliced {
		t.Errorf("change = %s, want %s", change, ChangeSpliced)
	}
	if !strings.HasSuffix(r.History(), "jumps over the very lazy dog end today") {
		t.Errorf("History = %q, want corrected tail", r.History())
	}
	if strings.Contains(r.History(), "over the lazy dog") {
		t.Errorf("History %q still contains the superseded phrase", r.History())
	}
	if r.History() != next {
		t.Errorf("History = %q, want %q", r.History(), next)
	}
}

func TestReconciler_NoMatchAppendsDisjointSegment(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	prev := "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123"
	next := "lorem ipsum dolor sit amet consectetur adipiscing"

	r.Update(prev)
	change := r.Update(next)

	if change != ChangeDisjoint {
		t.Errorf("change = %s, want %s", change, ChangeDisjoint)
	}
	if want := prev + " " + next; r.History() != want {
		t.Errorf("History = %q, want %q", r.History(), want)
	}
	if r.Previous() != next {
		t.Errorf("Previous() = %q, want %q", r.Previous(), next)
	}
}

func TestReconciler_NoMatchReplacePolicy(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{Disjoint: DisjointReplace})
	r.Update("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123")

	next := "lorem ipsum dolor sit amet consectetur adipiscing"
	change := r.Update(next)

	if change != ChangeDisjoint {
		t.Errorf("change = %s, want %s", change, ChangeDisjoint)
	}
	if r.History() != next {
		t.Errorf("History = %q, want %q", r.History(), next)
	}
}

func TestReconciler_PatternMissingFromHistoryAppends(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	prev := "the speaker said good morning to everybody"
	r.Restore("earlier text only", prev)

	next := prev + " and welcome back"
	change := r.Update(next)

	if change != ChangeAppended {
		t.Errorf("change = %s, want %s", change, ChangeAppended)
	}
	want := "earlier text only" + "morning to everybody and welcome back"
	if r.History() != want {
		t.Errorf("History = %q, want %q", r.History(), want)
	}
}

func TestReconciler_CaseInsensitiveMatch(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	prev := "THE SPEAKER IS TALKING VERY LOUDLY NOW"
	next := "the speaker is talking very loudly now and then stops"

	r.Update(prev)
	change := r.Update(next)

	if change != ChangeSpliced {
		t.Errorf("change = %s, want %s", change, ChangeSpliced)
	}
	// The splice keeps the text before the fingerprint and takes the new
	// snapshot's casing from the fingerprint onward.
	want := "THE SPEAKER IS TALKING VERY LOUDLY NOW"[:18] + next[18:]
	if r.History() != want {
		t.Errorf("History = %q, want %q", r.History(), want)
	}
}

func TestReconciler_SlidingWindowKeepsOlderText(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	r.Update("alpha bravo charlie delta echo foxtrot")
	// The source drops "alpha bravo " but adds more than it dropped.
	r.Update("charlie delta echo foxtrot golf hotel india juliet")

	want := "alpha bravo charlie delta echo foxtrot golf hotel india juliet"
	if r.History() != want {
		t.Errorf("History = %q, want %q", r.History(), want)
	}
}

func TestReconciler_LastOccurrenceInHistory(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	phrase := "we will now take questions"
	prev := phrase + " from the floor"
	r.Restore(phrase+" from the floor. "+prev, prev)

	r.Update(prev + " and online")

	want := phrase + " from the floor. " + prev + " and online"
	if r.History() != want {
		t.Errorf("History = %q, want %q", r.History(), want)
	}
}

func TestReconciler_MultibyteRunes(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	prev := "Größenwahn über alles, schön grüßen wir"
	next := prev + " und gehen nach Hause"

	r.Update(prev)
	change := r.Update(next)

	if change != ChangeSpliced {
		t.Errorf("change = %s, want %s", change, ChangeSpliced)
	}
	if r.History() != next {
		t.Errorf("History = %q, want %q", r.History(), next)
	}
}

func TestReconciler_MaxShiftBoundsSearch(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{PatternLen: 5, MaxShift: 3})
	prev := "abcdefghijklmnopqrst"
	r.Update(prev)

	// Only windows ending within 3 characters of the end are tried; the
	// shared prefix "abcde" is out of reach.
	change := r.Update("abcde-zzzzzzzzzzzzzzzzzzzz")

	if change != ChangeDisjoint {
		t.Errorf("change = %s, want %s", change, ChangeDisjoint)
	}
}

func TestReconciler_Reset(t *testing.T) {
	r := NewReconciler(ReconcilerConfig{})
	r.Update("some text that was captured earlier")

	r.Reset()

	if r.History() != "" || r.Previous() != "" {
		t.Errorf("after Reset History=%q Previous=%q, want empty", r.History(), r.Previous())
	}
	if change := r.Update("fresh"); change != ChangeReplaced {
		t.Errorf("Update after Reset change = %s, want %s", change, ChangeReplaced)
	}
}

func TestChange_Mutated(t *testing.T) {
	tests := []struct {
		change Change
		want   bool
	}{
		{ChangeNone, false},
		{ChangeReplaced, true},
		{ChangeShrunk, false},
		{ChangeTrivial, false},
		{ChangeDisjoint, true},
		{ChangeSpliced, true},
		{ChangeAppended, true},
	}

	for _, tt := range tests {
		t.Run(tt.change.String(), func(t *testing.T) {
			if got := tt.change.Mutated(); got != tt.want {
				t.Errorf("Mutated() = %v, want %v", got, tt.want)
			}
		})
	}
}
