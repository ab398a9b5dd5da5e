package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the folio banner in a violet gradient.
func PrintBanner(w io.Writer) {
	o := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"   __       _ _       ", "#818cf8"},
		{"  / _| ___ | (_) ___  ", "#a78bfa"},
		{" | |_ / _ \\| | |/ _ \\ ", "#c084fc"},
		{" |  _| (_) | | | (_) |", "#e879f9"},
		{" |_|  \\___/|_|_|\\___/ ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, o.String(l.text).Foreground(o.Color(l.color)))
	}
	fmt.Fprintln(w)
}
