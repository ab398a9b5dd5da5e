package tui

import (
	"fmt"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour,
// styled for the given theme. ThemeSystem detects the terminal background.
func NewRenderer(theme domain.Theme, width int) (func(string) (string, error), error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch theme {
	case domain.ThemeDark:
		opts = append(opts, glamour.WithStandardStyle("dark"))
	case domain.ThemeLight:
		opts = append(opts, glamour.WithStandardStyle("light"))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}
