package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/codetype/internal/engine"
	"github.com/verte-zerg/codetype/internal/samples"
)

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.filter.Value() != "" {
			m.filter.SetValue("")
			m.refilter()
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyUp, tea.KeyCtrlP:
		m.moveSelection(-1)
		return m, nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.moveSelection(1)
		return m, nil
	case tea.KeyEnter:
		if len(m.filtered) == 0 {
			return m, nil
		}
		if err := m.startSample(m.filtered[m.selected]); err != nil {
			logErrf("failed to start sample: %v\n", err)
			return m, nil
		}
		return m, nil
	}
	var cmd tea.Cmd
	prev := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the visible ids and keeps the selection on the same
// id when it is still visible.
func (m *Model) refilter() {
	current := ""
	if m.selected >= 0 && m.selected < len(m.filtered) {
		current = m.filtered[m.selected]
	}
	m.filtered = samples.Filter(m.ids, m.filter.Value())
	m.selected = 0
	m.selectID(current)
}

func (m *Model) selectID(id string) {
	if id == "" {
		return
	}
	for i, candidate := range m.filtered {
		if candidate == id {
			m.selected = i
			return
		}
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.filtered) == 0 {
		m.selected = 0
		return
	}
	m.selected = (m.selected + delta + len(m.filtered)) % len(m.filtered)
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("codetype"))
	b.WriteString("  ")
	b.WriteString(m.styles.footer.Render(m.result.Message()))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	listHeight := m.height - 7
	if m.height == 0 || listHeight < 1 {
		listHeight = len(m.filtered)
	}
	if len(m.filtered) == 0 {
		if len(m.ids) == 0 {
			b.WriteString(m.styles.help.Render("No samples yet. Add files to " + m.samplesDir()))
		} else {
			b.WriteString(m.styles.help.Render("No matches"))
		}
		b.WriteString("\n")
	}
	start := 0
	if m.selected >= listHeight {
		start = m.selected - listHeight + 1
	}
	for i := start; i < len(m.filtered) && i < start+listHeight; i++ {
		if i == m.selected {
			b.WriteString(m.styles.selected.Render("> " + m.filtered[i]))
		} else {
			b.WriteString(m.styles.item.Render("  " + m.filtered[i]))
		}
		b.WriteString("\n")
	}

	help := m.styles.help.Render("↑/↓: select • enter: start • ctrl+t: theme • esc: quit")
	if m.height == 0 {
		return b.String() + "\n" + help
	}
	return fitLines(b.String(), m.height-1) + "\n" + help
}

func (m *Model) startSample(id string) error {
	target, err := m.result.Catalog.Target(id)
	if err != nil {
		return err
	}
	m.sampleID = id
	m.machine = engine.NewMachine(target,
		engine.WithClock(m.now),
		engine.WithLineChange(func(line int) {
			m.scrollTo = line
		}),
	)
	if m.opts.Preferences != nil {
		if err := m.opts.Preferences.SetLastSample(context.Background(), id); err != nil {
			logErrf("failed to save last sample: %v\n", err)
		}
	}
	m.restart()
	return nil
}
