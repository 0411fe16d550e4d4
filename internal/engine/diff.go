package engine

// CellState classifies a target character for rendering.
type CellState int

const (
	CellUntyped CellState = iota
	CellCorrect
	CellIncorrect
)

// Cell is a target character together with its typing state.
type Cell struct {
	Char  rune
	Index int
	State CellState
}

// ComputeDiff returns the sorted rune indices in [0, len(typed)) where typed
// differs from target. Positions past the end of target always mismatch.
func ComputeDiff(typed, target string) []int {
	return diffRunes([]rune(typed), []rune(target))
}

func diffRunes(typed, target []rune) []int {
	var errs []int
	for i, r := range typed {
		if i >= len(target) || r != target[i] {
			errs = append(errs, i)
		}
	}
	return errs
}

// IsComplete reports whether typed reproduces target exactly.
func IsComplete(typed, target string) bool {
	t, g := []rune(typed), []rune(target)
	return len(t) == len(g) && len(diffRunes(t, g)) == 0
}

// Cells derives per-character render state for the session's target text.
func Cells(s Session) []Cell {
	target := []rune(s.Target)
	typedLen := len([]rune(s.Typed))
	wrong := make([]bool, len(target))
	for _, i := range s.Errors {
		if i < len(wrong) {
			wrong[i] = true
		}
	}
	cells := make([]Cell, len(target))
	for i, r := range target {
		state := CellUntyped
		if i < typedLen {
			state = CellCorrect
			if wrong[i] {
				state = CellIncorrect
			}
		}
		cells[i] = Cell{Char: r, Index: i, State: state}
	}
	return cells
}
