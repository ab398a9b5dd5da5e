package domain

import "strings"

// Theme is the color scheme requested by the visitor.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// ParseTheme normalizes a textual theme. Unknown values fall back to ThemeSystem.
func ParseTheme(s string) Theme {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t
	}
	return ThemeSystem
}

// Toggle returns the opposite explicit theme. System toggles to dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Themes lists the selectable themes.
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeSystem}
}
