package correction

import (
	"reflect"
	"testing"
)

func TestCorrect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		history  []string
		expected string
	}{
		{"empty history keeps input", "apple", nil, "apple"},
		{"reordered tokens collapse", "biscuit chocolate", []string{"chocolate biscuit"}, "chocolate biscuit"},
		{"misspelling corrected", "appl", []string{"banana", "apple"}, "apple"},
		{"below threshold rejected", "zucchini", []string{"apple"}, "zucchini"},
		{"case difference collapses", "rice", []string{"Rice"}, "Rice"},
		{"tie goes to first candidate", "pear", []string{"Pear", "pear"}, "Pear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Correct(tt.input, tt.history); got != tt.expected {
				t.Errorf("Correct(%q, %v) = %q, want %q", tt.input, tt.history, got, tt.expected)
			}
		})
	}
}

func TestCorrect_DoesNotMutateHistory(t *testing.T) {
	history := []string{"tea", "coffee", "Tea"}
	snapshot := append([]string(nil), history...)

	Correct("tee", history)

	if !reflect.DeepEqual(history, snapshot) {
		t.Errorf("history mutated: got %v, want %v", history, snapshot)
	}
}

func TestEngine_ThresholdIsStrict(t *testing.T) {
	// "appl" vs "apple" scores exactly 89.
	history := []string{"apple"}

	if got := New(89, nil).Correct("appl", history); got != "appl" {
		t.Errorf("threshold 89: Correct() = %q, want %q", got, "appl")
	}
	if got := New(88, nil).Correct("appl", history); got != "apple" {
		t.Errorf("threshold 88: Correct() = %q, want %q", got, "apple")
	}
}

func TestEngine_Best(t *testing.T) {
	e := New(DefaultThreshold, nil)

	m, ok := e.Best("chiken curry", []string{"fish curry", "chicken curry"})
	if !ok {
		t.Fatal("Best() ok = false, want true")
	}
	if m.Term != "chicken curry" || m.Index != 1 {
		t.Errorf("Best() = %+v, want chicken curry at index 1", m)
	}

	if _, ok := e.Best("anything", nil); ok {
		t.Error("Best() with empty history ok = true, want false")
	}
}

func TestEngine_Aliases(t *testing.T) {
	e := New(DefaultThreshold, map[string]string{
		"Choc Biscuit": "chocolate biscuit",
		"   ":          "ignored",
	})

	if got := e.Correct("choc  biscuit", nil); got != "chocolate biscuit" {
		t.Errorf("alias with empty history = %q, want %q", got, "chocolate biscuit")
	}
	if got := e.Correct("CHOC-BISCUIT", []string{"biscuit chocolate"}); got != "biscuit chocolate" {
		t.Errorf("alias then correction = %q, want %q", got, "biscuit chocolate")
	}
	if _, ok := e.Alias(""); ok {
		t.Error("blank alias key should not be registered")
	}
}

func TestEngine_Rank(t *testing.T) {
	e := New(DefaultThreshold, nil)
	history := []string{"brown rice", "rice", "zzz", "basmati rice"}

	got := e.Rank("rice", history, 0)
	want := []Match{
		{Term: "rice", Score: 100, Index: 1},
		{Term: "brown rice", Score: 57, Index: 0},
		{Term: "basmati rice", Score: 50, Index: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() = %+v, want %+v", got, want)
	}

	limited := e.Rank("rice", history, 2)
	if len(limited) != 2 || limited[0].Term != "rice" {
		t.Errorf("Rank() with limit = %+v", limited)
	}
}

func TestEngine_Resolve(t *testing.T) {
	e := New(DefaultThreshold, nil)

	m := e.Resolve("appl", []string{"apple"})
	if m.Term != "apple" || m.Score != 89 || m.Index != 0 {
		t.Errorf("Resolve() accepted = %+v", m)
	}

	m = e.Resolve("zucchini", []string{"apple"})
	if m.Term != "zucchini" || m.Score != 0 || m.Index != -1 {
		t.Errorf("Resolve() rejected = %+v", m)
	}
}
