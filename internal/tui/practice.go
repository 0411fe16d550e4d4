package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/codetype/internal/engine"
	"github.com/verte-zerg/codetype/internal/stats"
)

const tabInput = "    "

func (m *Model) updatePractice(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leavePractice()
		return m, nil
	case tea.KeyCtrlR:
		m.restart()
		return m, nil
	case tea.KeyBackspace:
		if len(m.typed) == 0 {
			return m, nil
		}
		m.typed = m.typed[:len(m.typed)-1]
	case tea.KeyCtrlW:
		m.typed = deleteLastWord(m.typed)
	case tea.KeyEnter:
		m.typed = append(m.typed, '\n')
	case tea.KeyTab:
		m.typed = append(m.typed, []rune(tabInput)...)
	case tea.KeySpace:
		m.typed = append(m.typed, ' ')
	case tea.KeyRunes:
		// Pasted text may carry CR line endings or tabs.
		m.typed = append(m.typed, []rune(engine.Normalize(string(msg.Runes)))...)
	default:
		return m, nil
	}
	return m, m.input()
}

// input feeds the current buffer to the machine as one event.
func (m *Model) input() tea.Cmd {
	step := m.machine.Input(string(m.typed))
	if step.Completed {
		metrics, err := m.machine.Metrics()
		if err != nil {
			logErrf("failed to compute metrics: %v\n", err)
		}
		m.metrics = metrics
		m.mode = modeResults
		return nil
	}
	m.renderText()
	if step.Started {
		return tickCmd()
	}
	return nil
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.restart()
	case tea.KeyEsc:
		m.leavePractice()
	}
	return m, nil
}

// restart resets the session and prefills the skipped leading whitespace,
// which does not start the timer.
func (m *Model) restart() {
	m.machine.Reset()
	s := m.machine.Session()
	m.typed = append([]rune(nil), []rune(s.Target)[:s.Offset]...)
	m.machine.Input(string(m.typed))
	m.metrics = stats.Metrics{}
	m.mode = modePractice
	m.scrollTo = m.machine.Session().Line
	m.viewport.GotoTop()
	m.renderText()
}

func (m *Model) leavePractice() {
	m.machine = nil
	m.typed = nil
	m.sampleID = ""
	m.rowStarts = nil
	m.mode = modePicker
}

func (m *Model) renderText() {
	s := m.machine.Session()
	cells := engine.Cells(s)
	cursor := -1
	if len(m.typed) < len(cells) {
		cursor = len(m.typed)
	}
	width := 0
	if m.width > 0 {
		width = m.contentWidth()
	}
	content, rowStarts := renderLines(cells, s.Lines(), cursor, s.Line, width, m.styles)
	m.rowStarts = rowStarts
	m.viewport.SetContent(content)
	if m.scrollTo >= 0 {
		m.scrollToLine(m.scrollTo)
		m.scrollTo = -1
	}
}

// scrollToLine centers the given line in the viewport.
func (m *Model) scrollToLine(line int) {
	if line < 0 || line >= len(m.rowStarts) || m.viewport.Height <= 0 {
		return
	}
	offset := m.rowStarts[line] - m.viewport.Height/2
	if offset < 0 {
		offset = 0
	}
	m.viewport.SetYOffset(offset)
}

func (m *Model) viewPractice() string {
	header := m.styles.title.Render(m.sampleID) + "  " + m.styles.footer.Render(m.machine.Status().String())
	help := m.styles.help.Render("esc: samples • ctrl+r: restart • ctrl+t: theme")
	if m.width == 0 || m.height == 0 {
		s := m.machine.Session()
		content, _ := renderLines(engine.Cells(s), s.Lines(), len(m.typed), s.Line, 0, m.styles)
		return header + "\n\n" + content + "\n" + m.renderFooter()
	}
	body := fitLines(m.viewport.View(), m.bodyHeight())
	return strings.Join([]string{
		header,
		"",
		indent(body, 2),
		m.renderFooter(),
		help,
	}, "\n")
}

func (m *Model) renderFooter() string {
	s := m.machine.Session()
	segments := []string{
		fmt.Sprintf("Progress %d%%", int(s.Progress()*100)),
		fmt.Sprintf("Line %d/%d", s.Line+1, s.LineCount()),
		fmt.Sprintf("Time %s", stats.FormatElapsed(stats.ElapsedSeconds(m.machine.Elapsed()))),
	}
	if len(s.Errors) > 0 {
		segments = append(segments, fmt.Sprintf("Errors %d", len(s.Errors)))
	}
	return m.styles.footer.Render(strings.Join(segments, "  "))
}

func (m *Model) renderResults() string {
	row := func(label, value string) string {
		return m.styles.label.Render(label) + " " + m.styles.value.Render(value)
	}
	body := strings.Join([]string{
		m.styles.dialogTitle.Render("Session complete"),
		row("Speed:   ", fmt.Sprintf("%d WPM", m.metrics.WPM)),
		row("Accuracy:", fmt.Sprintf("%d%%", m.metrics.Accuracy)),
		row("Time:    ", stats.FormatElapsed(m.metrics.ElapsedSeconds)),
		row("Mistakes:", fmt.Sprintf("%d", m.metrics.Mistakes)),
		"",
		m.styles.help.Render("enter: restart • esc: samples"),
	}, "\n")
	return m.styles.dialog.Render(body)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}

// deleteLastWord removes trailing spaces and then the preceding word.
func deleteLastWord(typed []rune) []rune {
	i := len(typed)
	for i > 0 && typed[i-1] == ' ' {
		i--
	}
	for i > 0 && typed[i-1] != ' ' && typed[i-1] != '\n' {
		i--
	}
	return typed[:i]
}
