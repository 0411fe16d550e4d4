package engine

import (
	"reflect"
	"testing"
)

func TestComputeDiff(t *testing.T) {
	tests := []struct {
		typed  string
		target string
		want   []int
	}{
		{"abc", "abd", []int{2}},
		{"abc", "abc", nil},
		{"abcd", "ab", []int{2, 3}},
		{"", "abc", nil},
		{"xbx", "abc", []int{0, 2}},
		{"ñb", "nb", []int{0}},
	}
	for _, tt := range tests {
		got := ComputeDiff(tt.typed, tt.target)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("ComputeDiff(%q, %q) = %v, want %v", tt.typed, tt.target, got, tt.want)
		}
	}
}

func TestIsComplete(t *testing.T) {
	if !IsComplete("hi", "hi") {
		t.Fatalf("expected exact match to be complete")
	}
	if IsComplete("h", "hi") {
		t.Fatalf("expected prefix to be incomplete")
	}
	if IsComplete("ho", "hi") {
		t.Fatalf("expected mismatch to be incomplete")
	}
	if IsComplete("hii", "hi") {
		t.Fatalf("expected overlong input to be incomplete")
	}
}

func TestCells(t *testing.T) {
	s := OnInput(NewSession("abc"), "ax", epoch)
	cells := Cells(s)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	want := []CellState{CellCorrect, CellIncorrect, CellUntyped}
	for i, c := range cells {
		if c.State != want[i] {
			t.Fatalf("cell %d state = %v, want %v", i, c.State, want[i])
		}
		if c.Index != i {
			t.Fatalf("cell %d index = %d", i, c.Index)
		}
	}
	if cells[1].Char != 'b' {
		t.Fatalf("cells show target characters, got %q", cells[1].Char)
	}
}
