package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/codetype/internal/engine"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/samples"
	"github.com/verte-zerg/codetype/internal/stats"
)

type mode int

const (
	modeLoading mode = iota
	modeUnavailable
	modePicker
	modePractice
	modeResults
)

const (
	headerHeight = 2
	footerHeight = 2
	tickInterval = time.Second
)

// Preferences persists user choices made inside the UI.
type Preferences interface {
	SetTheme(ctx context.Context, theme model.Theme) error
	SetLastSample(ctx context.Context, id string) error
}

// Options configures the typing UI.
type Options struct {
	Theme model.Theme
	// Sample starts practice on this id right after loading, if present.
	Sample string
	// LastSample preselects an id in the picker.
	LastSample  string
	Preferences Preferences
	Watcher     *samples.Watcher
	Clock       func() time.Time
}

type loadedMsg struct {
	result samples.LoadResult
}

type samplesChangedMsg struct{}

type watchErrMsg struct {
	err error
}

type tickMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	provider samples.Provider
	opts     Options
	now      func() time.Time

	theme  model.Theme
	styles styles
	mode   mode

	result   samples.LoadResult
	ids      []string
	filtered []string
	selected int
	filter   textinput.Model

	sampleID  string
	machine   *engine.Machine
	typed     []rune
	viewport  viewport.Model
	rowStarts []int
	scrollTo  int
	metrics   stats.Metrics

	width  int
	height int
}

// NewModel constructs a typing TUI model that loads samples from provider.
func NewModel(provider samples.Provider, opts Options) *Model {
	if opts.Theme == "" {
		opts.Theme = model.ThemeDark
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	filter := textinput.New()
	filter.Prompt = "Filter: "
	filter.Placeholder = "type to search samples"
	filter.CharLimit = 0
	filter.Focus()

	return &Model{
		provider: provider,
		opts:     opts,
		now:      now,
		theme:    opts.Theme,
		styles:   newStyles(opts.Theme),
		mode:     modeLoading,
		result:   samples.LoadResult{State: samples.StateLoading},
		filter:   filter,
		viewport: viewport.New(0, 0),
		scrollTo: -1,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.watchCmd())
}

func (m *Model) loadCmd() tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		return loadedMsg{result: samples.Load(context.Background(), provider)}
	}
}

func (m *Model) watchCmd() tea.Cmd {
	w := m.opts.Watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			return samplesChangedMsg{}
		case err := <-w.Errors:
			return watchErrMsg{err: err}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case loadedMsg:
		m.applyLoad(msg.result)
		return m, nil
	case samplesChangedMsg:
		return m, tea.Batch(m.loadCmd(), m.watchCmd())
	case watchErrMsg:
		logErrf("failed to watch samples: %v\n", msg.err)
		return m, m.watchCmd()
	case tickMsg:
		if m.mode == modePractice && m.machine != nil && m.machine.Status() == engine.StatusInProgress {
			return m, tickCmd()
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlT:
			m.toggleTheme()
			return m, nil
		}
		switch m.mode {
		case modePicker:
			return m.updatePicker(msg)
		case modePractice:
			return m.updatePractice(msg)
		case modeResults:
			return m.updateResults(msg)
		default:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case modeLoading:
		return m.place(m.styles.footer.Render(m.result.Message()))
	case modeUnavailable:
		body := m.styles.errText.Render(m.result.Message()) + "\n\n" +
			m.styles.help.Render(fmt.Sprintf("Add files to %s and restart • esc: quit", m.samplesDir()))
		return m.place(body)
	case modePicker:
		return m.viewPicker()
	case modePractice:
		return m.viewPractice()
	case modeResults:
		return m.place(m.renderResults())
	default:
		return ""
	}
}

func (m *Model) applyLoad(result samples.LoadResult) {
	if result.State == samples.StateUnavailable {
		m.result = result
		if m.mode == modeLoading {
			m.mode = modeUnavailable
		} else {
			logErrf("failed to reload samples: %v\n", result.Err)
		}
		return
	}
	m.result = result
	m.ids = result.Catalog.IDs()
	m.refilter()

	switch m.mode {
	case modeLoading, modeUnavailable:
		m.mode = modePicker
		m.selectID(m.opts.LastSample)
		if m.opts.Sample != "" {
			if err := m.startSample(m.opts.Sample); err != nil {
				logErrf("failed to start sample: %v\n", err)
			}
		}
	}
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.styles = newStyles(m.theme)
	if m.opts.Preferences != nil {
		if err := m.opts.Preferences.SetTheme(context.Background(), m.theme); err != nil {
			logErrf("failed to save theme: %v\n", err)
		}
	}
	if m.machine != nil {
		m.renderText()
	}
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = m.bodyHeight()
	m.filter.Width = m.width - lipgloss.Width(m.filter.Prompt) - 2
	if m.machine != nil {
		m.scrollTo = m.machine.Session().Line
		m.renderText()
	}
}

func (m *Model) contentWidth() int {
	w := m.width - 4
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) place(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) samplesDir() string {
	if p, ok := m.provider.(*samples.DirProvider); ok {
		return p.Dir
	}
	return "the samples directory"
}

func fitLines(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
