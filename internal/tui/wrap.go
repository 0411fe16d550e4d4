// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/codetype/internal/engine"
)

const (
	newlineMarker = '⏎'
	wrongSpace    = '•'
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// splitLines groups cells by line using the target's line starts. Each line
// keeps its terminating newline cell, so a text ending in a newline yields a
// trailing empty line.
func splitLines(cells []engine.Cell, index engine.LineIndex) [][]engine.Cell {
	lines := make([][]engine.Cell, 0, index.Count())
	for line := 0; line < index.Count(); line++ {
		start := min(index.Start(line), len(cells))
		end := min(index.Start(line+1), len(cells))
		lines = append(lines, cells[start:end])
	}
	return lines
}

func buildLineRunes(line []engine.Cell, cursor int, st styles, current bool) []styledRune {
	out := make([]styledRune, 0, len(line)+1)
	add := func(r rune, style lipgloss.Style, isSpace bool) {
		if current {
			style = style.Background(st.lineBg)
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: isSpace,
		})
	}

	if len(line) == 0 {
		add(newlineMarker, st.marker, false)
		return out
	}
	for _, c := range line {
		style := st.pending
		displayed := c.Char
		switch c.State {
		case engine.CellCorrect:
			style = st.correct
		case engine.CellIncorrect:
			style = st.incorrect
			if c.Char == ' ' {
				displayed = wrongSpace
			}
		}
		if c.Char == '\n' {
			// Only draw the newline when it carries information.
			if len(line) > 1 && c.State != engine.CellIncorrect && c.Index != cursor {
				continue
			}
			displayed = newlineMarker
			if c.State == engine.CellUntyped {
				style = st.marker
			}
		}
		if c.Index == cursor {
			style = style.Underline(true)
		}
		add(displayed, style, c.Char == ' ')
	}
	return out
}

// renderLines renders the session text wrapped to width, highlighting the
// current line. It also returns the first display row of each line.
func renderLines(cells []engine.Cell, index engine.LineIndex, cursor, currentLine, width int, st styles) (string, []int) {
	lines := splitLines(cells, index)
	rendered := make([]string, len(lines))
	rowStarts := make([]int, len(lines))
	row := 0
	for i, line := range lines {
		runes := buildLineRunes(line, cursor, st, i == currentLine)
		wrapped := wrapStyledRunes(runes, width)
		rendered[i] = wrapped
		rowStarts[i] = row
		row += strings.Count(wrapped, "\n") + 1
	}
	return strings.Join(rendered, "\n"), rowStarts
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
