package engine

import (
	"time"

	"github.com/verte-zerg/codetype/internal/stats"
)

// Step reports what changed while processing one input event.
type Step struct {
	Started     bool
	Completed   bool
	LineChanged bool
	Line        int
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock overrides the time source used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLineChange registers a callback invoked whenever the current line
// changes, so the display can scroll that line into view.
func WithLineChange(fn func(line int)) Option {
	return func(m *Machine) {
		m.onLine = fn
	}
}

// Machine owns the live session and serializes all changes to it.
// It is not safe for concurrent use; callers deliver events one at a time.
type Machine struct {
	session Session
	now     func() time.Time
	onLine  func(line int)
}

// NewMachine starts an idle session on target, which must be normalized.
func NewMachine(target string, opts ...Option) *Machine {
	m := &Machine{
		session: NewSession(target),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Input processes the full typed buffer after one edit.
func (m *Machine) Input(typed string) Step {
	prev := m.session
	next := OnInput(prev, typed, m.now())
	m.session = next

	step := Step{
		Started:   prev.StartedAt.IsZero() && !next.StartedAt.IsZero(),
		Completed: prev.Status != StatusCompleted && next.Status == StatusCompleted,
		Line:      next.Line,
	}
	if next.Line != prev.Line {
		step.LineChanged = true
		m.notifyLine(next.Line)
	}
	return step
}

// Reset returns the session to idle on the same target.
func (m *Machine) Reset() {
	prevLine := m.session.Line
	m.session = Reset(m.session)
	if prevLine != m.session.Line {
		m.notifyLine(m.session.Line)
	}
}

// Select replaces the session with a fresh one on a new target.
func (m *Machine) Select(target string) {
	prevLine := m.session.Line
	m.session = NewSession(target)
	if prevLine != m.session.Line {
		m.notifyLine(m.session.Line)
	}
}

// Session returns a snapshot of the live session.
func (m *Machine) Session() Session {
	return m.session.Clone()
}

// Status returns the live session status.
func (m *Machine) Status() Status {
	return m.session.Status
}

// Metrics computes results once the session is completed.
func (m *Machine) Metrics() (stats.Metrics, error) {
	return Metrics(m.session)
}

// Elapsed returns the time spent typing so far according to the clock.
func (m *Machine) Elapsed() time.Duration {
	return m.session.Elapsed(m.now())
}

func (m *Machine) notifyLine(line int) {
	if m.onLine != nil {
		m.onLine(line)
	}
}
