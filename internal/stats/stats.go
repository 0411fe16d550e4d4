// Package stats contains statistics calculations for finished sessions.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Metrics summarizes a completed typing session.
type Metrics struct {
	WPM            int
	Accuracy       int
	ElapsedSeconds float64
	// Mistakes counts every keystroke that landed on a wrong character,
	// including ones corrected before completion.
	Mistakes int
}

// ComputeMetrics derives WPM, accuracy and elapsed time for a session that
// ran from start to end over target. errorCount is the number of mismatched
// positions at completion.
func ComputeMetrics(start, end time.Time, target string, errorCount, mistakes int) Metrics {
	elapsed := ElapsedSeconds(end.Sub(start))
	return Metrics{
		WPM:            WPM(WordCount(target), elapsed),
		Accuracy:       Accuracy(utf8.RuneCountInString(target), errorCount),
		ElapsedSeconds: elapsed,
		Mistakes:       mistakes,
	}
}

// ElapsedSeconds converts a duration to seconds rounded to one decimal.
func ElapsedSeconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	// Round on integer tenths to avoid binary float drift at .x5 boundaries.
	tenths := (d.Milliseconds() + 50) / 100
	return float64(tenths) / 10
}

// WordCount counts the tokens produced by splitting text on single spaces.
// Empty text has no words.
func WordCount(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Split(text, " "))
}

// WPM computes words per minute, rounded to the nearest integer.
func WPM(words int, elapsedSeconds float64) int {
	if words <= 0 || elapsedSeconds <= 0 {
		return 0
	}
	minutes := elapsedSeconds / 60.0
	return int(math.Round(float64(words) / minutes))
}

// Accuracy returns the rounded percentage of correct characters in [0, 100].
// A zero-length text is vacuously 100% accurate.
func Accuracy(total, errorCount int) int {
	if total <= 0 {
		return 100
	}
	pct := int(math.Round(100 * float64(total-errorCount) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatElapsed renders seconds with one decimal, e.g. "12.3s".
func FormatElapsed(seconds float64) string {
	return fmt.Sprintf("%.1fs", seconds)
}
