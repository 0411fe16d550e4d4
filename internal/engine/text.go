// Package engine implements the typing session core: text preparation,
// keystroke diffing, line tracking and the session state machine.
package engine

import (
	"strings"
	"unicode"
)

const (
	tabSpaces = "    "

	// byteOrderMark may lead a sample file and cannot be typed.
	byteOrderMark = '\uFEFF'
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n", "\t", tabSpaces)

// Normalize canonicalizes raw sample text into a typing target.
// CRLF and lone CR become LF, and each tab expands to four spaces.
func Normalize(raw string) string {
	return lineEndings.Replace(raw)
}

// LocateFirstTypable returns the rune offset of the first non-whitespace
// character in target, skipping whitespace-only lines. A byte order mark
// counts as whitespace. It returns 0 when the text has no such character.
func LocateFirstTypable(target string) int {
	pos := 0
	for _, line := range strings.Split(target, "\n") {
		col := 0
		for _, r := range line {
			if !isBlank(r) {
				return pos + col
			}
			col++
		}
		pos += col + 1
	}
	return 0
}

func isBlank(r rune) bool {
	return r == byteOrderMark || unicode.IsSpace(r)
}
