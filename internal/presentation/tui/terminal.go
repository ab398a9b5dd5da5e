package tui

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// RawInput switches f to raw mode when it is a terminal so single key
// presses reach the player. restore is always safe to call.
func RawInput(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return func() {}, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

// Width returns the terminal width of f, or fallback when unknown.
func Width(f *os.File, fallback int) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
