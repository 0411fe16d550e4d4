// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Theme is the display color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Config defines practice settings.
type Config struct {
	SamplesDir string
	Sample     string
	Theme      Theme
	Watch      bool
}

// Sample is one practice text as provided, before normalization.
type Sample struct {
	ID      string
	Content string
}
