package engine

import "sort"

// LineIndex is a precomputed table of line start offsets for a target text.
type LineIndex struct {
	starts []int
	length int
}

// NewLineIndex scans target once and records the rune offset at which each
// line begins.
func NewLineIndex(target string) LineIndex {
	starts := []int{0}
	n := 0
	for _, r := range target {
		n++
		if r == '\n' {
			starts = append(starts, n)
		}
	}
	return LineIndex{starts: starts, length: n}
}

// Line returns the zero-based line containing cursor, which equals the
// number of newlines before it. The cursor is clamped to the text bounds.
func (li LineIndex) Line(cursor int) int {
	if len(li.starts) == 0 || cursor <= 0 {
		return 0
	}
	if cursor > li.length {
		cursor = li.length
	}
	// starts[k] is the offset just past the k-th newline, so the line is the
	// number of starts at or before cursor, minus the leading 0.
	return sort.SearchInts(li.starts, cursor+1) - 1
}

// Count returns the number of lines.
func (li LineIndex) Count() int {
	if len(li.starts) == 0 {
		return 1
	}
	return len(li.starts)
}

// Start returns the rune offset at which line begins.
func (li LineIndex) Start(line int) int {
	if line <= 0 || len(li.starts) == 0 {
		return 0
	}
	if line >= len(li.starts) {
		return li.length
	}
	return li.starts[line]
}

// CurrentLine counts the newlines in target[0:cursor].
func CurrentLine(target string, cursor int) int {
	return NewLineIndex(target).Line(cursor)
}
