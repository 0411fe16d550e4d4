package engine

import (
	"errors"
	"time"

	"github.com/verte-zerg/codetype/internal/stats"
)

// ErrNotCompleted is returned when metrics are requested for a session that
// has not reached StatusCompleted.
var ErrNotCompleted = errors.New("session not completed")

// Status is the lifecycle state of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusInProgress
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is the state of one practice attempt on one target text.
// Values are snapshots: the step functions return new sessions and never
// modify their argument.
type Session struct {
	Target string
	Typed  string
	// Errors holds sorted rune indices into Typed that mismatch Target.
	Errors    []int
	StartedAt time.Time
	EndedAt   time.Time
	Line      int
	Status    Status
	// Offset is the first position the user has to type.
	Offset   int
	Mistakes int

	lines LineIndex
}

// NewSession creates an idle session for an already normalized target.
func NewSession(target string) Session {
	return Session{
		Target: target,
		Offset: LocateFirstTypable(target),
		lines:  NewLineIndex(target),
	}
}

// Reset discards all typing state and keeps the target.
func Reset(s Session) Session {
	fresh := NewSession(s.Target)
	if s.lines.starts != nil {
		fresh.lines = s.lines
	}
	return fresh
}

// OnInput applies one input event: the full typed buffer after the edit.
// Input to a completed session is ignored.
func OnInput(s Session, typed string, now time.Time) Session {
	if s.Status == StatusCompleted {
		return s
	}
	if s.lines.starts == nil {
		s.lines = NewLineIndex(s.Target)
	}

	prevLen := len([]rune(s.Typed))
	typedRunes := []rune(typed)
	targetRunes := []rune(s.Target)

	s.Typed = typed
	s.Errors = diffRunes(typedRunes, targetRunes)
	s.Line = s.lines.Line(len(typedRunes))
	for _, i := range s.Errors {
		if i >= prevLen {
			s.Mistakes++
		}
	}

	if s.StartedAt.IsZero() && len(typedRunes) > s.Offset {
		s.StartedAt = now
		s.Status = StatusInProgress
	}
	if s.Status == StatusInProgress && len(typedRunes) == len(targetRunes) && len(s.Errors) == 0 {
		s.EndedAt = now
		s.Status = StatusCompleted
	}
	return s
}

// Metrics computes the results of a completed session.
func Metrics(s Session) (stats.Metrics, error) {
	if s.Status != StatusCompleted {
		return stats.Metrics{}, ErrNotCompleted
	}
	return stats.ComputeMetrics(s.StartedAt, s.EndedAt, s.Target, len(s.Errors), s.Mistakes), nil
}

// Elapsed returns the time spent typing so far.
func (s Session) Elapsed(now time.Time) time.Duration {
	switch s.Status {
	case StatusInProgress:
		return now.Sub(s.StartedAt)
	case StatusCompleted:
		return s.EndedAt.Sub(s.StartedAt)
	default:
		return 0
	}
}

// Progress returns the share of the target typed so far, in [0, 1].
func (s Session) Progress() float64 {
	total := len([]rune(s.Target))
	if total == 0 {
		return 0
	}
	typed := len([]rune(s.Typed))
	if typed > total {
		typed = total
	}
	return float64(typed) / float64(total)
}

// LineCount returns the number of lines in the target.
func (s Session) LineCount() int {
	return s.Lines().Count()
}

// Lines returns the line index of the target.
func (s Session) Lines() LineIndex {
	if s.lines.starts == nil {
		return NewLineIndex(s.Target)
	}
	return s.lines
}

// Clone returns a copy that shares no mutable state with s.
func (s Session) Clone() Session {
	if s.Errors != nil {
		s.Errors = append([]int(nil), s.Errors...)
	}
	return s
}
