package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/muesli/termenv"
)

type palette struct {
	accent, text, muted string
}

var palettes = map[domain.Theme]palette{
	domain.ThemeDark:  {accent: "#60a5fa", text: "#f4f4f5", muted: "#a1a1aa"},
	domain.ThemeLight: {accent: "#2563eb", text: "#18181b", muted: "#71717a"},
}

func paletteFor(o *termenv.Output, theme domain.Theme) palette {
	if theme == domain.ThemeSystem {
		theme = domain.ThemeLight
		if o.HasDarkBackground() {
			theme = domain.ThemeDark
		}
	}
	return palettes[theme]
}

// CardView is everything needed to draw one frame of the carousel.
type CardView struct {
	Slide       domain.Slide
	Visual      tween.Visual
	State       domain.State
	NextAdvance time.Duration // zero when autoplay is off or paused
	Theme       domain.Theme
	T           func(key string, args ...any) string
}

// RenderCard draws the active slide and the pagination line.
// A slide still fading in is drawn faint.
func RenderCard(o *termenv.Output, v CardView) string {
	p := paletteFor(o, v.Theme)
	faint := v.Visual.Opacity < 0.5

	style := func(s, color string) termenv.Style {
		st := o.String(s).Foreground(o.Color(color))
		if faint {
			st = st.Faint()
		}
		return st
	}

	var b strings.Builder
	line := func(s fmt.Stringer) {
		b.WriteString(s.String())
		b.WriteString("\r\n")
	}

	line(style(strings.ToUpper(v.Slide.Tag), p.muted))
	line(style(v.Slide.Name, p.accent).Bold())
	if v.Slide.Description != "" {
		line(style(v.Slide.Description, p.text))
	}
	switch {
	case v.Slide.Placeholder:
		line(style("["+v.T("carousel.soon")+"]", p.muted).Italic())
	case v.Slide.HasLink():
		line(style(v.T("carousel.visit")+": "+v.Slide.Link, p.accent).Underline())
	default:
		line(style(v.T("carousel.unavailable"), p.muted))
	}
	b.WriteString("\r\n")

	var dots strings.Builder
	for i := 0; i < v.State.SlideCount; i++ {
		if i == v.State.ActiveIndex {
			dots.WriteString(o.String("●").Foreground(o.Color(p.accent)).String())
		} else {
			dots.WriteString(o.String("○").Foreground(o.Color(p.muted)).String())
		}
		dots.WriteString(" ")
	}

	status := v.T("tui.playing")
	if v.State.Paused {
		status = v.T("tui.paused")
	}
	if v.NextAdvance > 0 {
		status += " · " + v.T("tui.next_in", v.NextAdvance.Round(time.Second).String())
	}
	fmt.Fprintf(&b, "%s %s · %s\r\n",
		dots.String(),
		v.T("carousel.position", v.State.ActiveIndex+1, v.State.SlideCount),
		o.String(status).Foreground(o.Color(p.muted)))
	return b.String()
}
