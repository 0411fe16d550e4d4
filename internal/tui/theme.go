package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/codetype/internal/model"
)

type styles struct {
	correct   lipgloss.Style
	incorrect lipgloss.Style
	pending   lipgloss.Style
	marker    lipgloss.Style
	lineBg    lipgloss.Color

	title    lipgloss.Style
	footer   lipgloss.Style
	help     lipgloss.Style
	selected lipgloss.Style
	item     lipgloss.Style
	errText  lipgloss.Style

	dialog      lipgloss.Style
	dialogTitle lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
}

// newStyles maps the light theme to Catppuccin Latte and dark to Mocha.
func newStyles(theme model.Theme) styles {
	flavor := catppuccin.Mocha
	if theme == model.ThemeLight {
		flavor = catppuccin.Latte
	}
	text := lipgloss.Color(flavor.Text().Hex)
	muted := lipgloss.Color(flavor.Overlay0().Hex)
	subtle := lipgloss.Color(flavor.Subtext0().Hex)
	green := lipgloss.Color(flavor.Green().Hex)
	red := lipgloss.Color(flavor.Red().Hex)
	accent := lipgloss.Color(flavor.Mauve().Hex)
	peach := lipgloss.Color(flavor.Peach().Hex)

	return styles{
		correct:   lipgloss.NewStyle().Foreground(green),
		incorrect: lipgloss.NewStyle().Foreground(red).Underline(true),
		pending:   lipgloss.NewStyle().Foreground(subtle),
		marker:    lipgloss.NewStyle().Foreground(muted),
		lineBg:    lipgloss.Color(flavor.Surface0().Hex),

		title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		footer:   lipgloss.NewStyle().Foreground(muted),
		help:     lipgloss.NewStyle().Foreground(muted),
		selected: lipgloss.NewStyle().Foreground(peach).Bold(true),
		item:     lipgloss.NewStyle().Foreground(text),
		errText:  lipgloss.NewStyle().Foreground(red).Bold(true),

		dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(accent).
			Padding(1, 3),
		dialogTitle: lipgloss.NewStyle().Foreground(accent).Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(muted),
		value:       lipgloss.NewStyle().Foreground(green).Bold(true),
	}
}
