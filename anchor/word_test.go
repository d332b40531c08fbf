package anchor

import "testing"

func TestWordStart(t *testing.T) {
	history := "Hello, big world. Next?"

	tests := []struct {
		name string
		pos  int
		want int
	}{
		{"start", 0, 0},
		{"negative", -1, 0},
		{"inside first word", 3, 0},
		{"inside second word", 9, 7},
		{"right after space", 7, 7},
		{"inside third word", 13, 11},
		{"after period", 18, 18},
		{"past end selects last word", 100, 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordStart(history, tt.pos); got != tt.want {
				t.Errorf("WordStart(%d) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}

	if got := WordStart("", 5); got != 0 {
		t.Errorf("WordStart(empty) = %d, want 0", got)
	}
}

func TestTracker_SelectWord(t *testing.T) {
	tr := New()
	history := "caption text flows"

	tr.SelectWord(10, history)

	if tr.Offset() != 8 {
		t.Errorf("Offset() = %d, want 8", tr.Offset())
	}
	if !tr.UserSet() {
		t.Error("SelectWord did not mark anchor as user-set")
	}
}

func TestByteOffset(t *testing.T) {
	history := "añb c"

	tests := []struct {
		runes int
		want  int
	}{
		{0, 0},
		{1, 1},
		{2, 3},
		{3, 4},
		{50, 6},
	}

	for _, tt := range tests {
		if got := ByteOffset(history, tt.runes); got != tt.want {
			t.Errorf("ByteOffset(%d) = %d, want %d", tt.runes, got, tt.want)
		}
	}
}

func TestUnit(t *testing.T) {
	history := "café au lait"

	tests := []struct {
		unit string
		pos  int
		want int
	}{
		{"", 5, 5},
		{"bytes", 5, 5},
		{"char", 5, 6},
		{"Chars", 4, 5},
		{"rune", 100, len(history)},
	}

	for _, tt := range tests {
		u, err := ParseUnit(tt.unit)
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", tt.unit, err)
		}
		if got := u.Offset(history, tt.pos); got != tt.want {
			t.Errorf("%q Offset(%d) = %d, want %d", tt.unit, tt.pos, got, tt.want)
		}
	}

	if _, err := ParseUnit("words"); err == nil {
		t.Error("ParseUnit(words) error = nil")
	}
}

func TestCharIndex(t *testing.T) {
	history := "café au lait"

	if got := CharIndex(history, 6); got != 5 {
		t.Errorf("CharIndex(6) = %d, want 5", got)
	}
	if got := CharIndex(history, 99); got != 12 {
		t.Errorf("CharIndex(past end) = %d, want 12", got)
	}
	if got := CharIndex(history, -1); got != 0 {
		t.Errorf("CharIndex(-1) = %d, want 0", got)
	}
}
