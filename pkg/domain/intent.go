package domain

import "fmt"

// IntentKind is the normalized action requested from a carousel.
type IntentKind string

const (
	IntentGoTo   IntentKind = "goto"
	IntentNext   IntentKind = "next"
	IntentPrev   IntentKind = "prev"
	IntentPause  IntentKind = "pause"
	IntentResume IntentKind = "resume"
)

// Source identifies where an intent originated.
type Source string

const (
	SourceAutoplay Source = "autoplay"
	SourceArrow    Source = "arrow"
	SourceDot      Source = "dot"
	SourceKeyboard Source = "keyboard"
	SourcePointer  Source = "pointer"
	SourceAPI      Source = "api"
)

// Intent is a request to change the active slide or the playback axis.
// Intents are values; once created they must not be mutated.
type Intent struct {
	Kind   IntentKind `json:"kind"`
	Index  int        `json:"index,omitempty"` // Only meaningful for IntentGoTo
	Source Source     `json:"source"`
}

// GoTo creates an intent targeting a literal slide index.
func GoTo(index int, source Source) Intent {
	return Intent{Kind: IntentGoTo, Index: index, Source: source}
}

// Next creates an intent advancing by one slide.
func Next(source Source) Intent {
	return Intent{Kind: IntentNext, Source: source}
}

// Prev creates an intent stepping back by one slide.
func Prev(source Source) Intent {
	return Intent{Kind: IntentPrev, Source: source}
}

// Pause creates an intent suppressing autoplay.
func Pause(source Source) Intent {
	return Intent{Kind: IntentPause, Source: source}
}

// Resume creates an intent re-enabling autoplay.
func Resume(source Source) Intent {
	return Intent{Kind: IntentResume, Source: source}
}

// IsNavigation reports whether the intent moves between slides (as opposed to toggling playback).
func (i Intent) IsNavigation() bool {
	switch i.Kind {
	case IntentGoTo, IntentNext, IntentPrev:
		return true
	}
	return false
}

func (i Intent) String() string {
	if i.Kind == IntentGoTo {
		return fmt.Sprintf("%s(%d) from %s", i.Kind, i.Index, i.Source)
	}
	return fmt.Sprintf("%s from %s", i.Kind, i.Source)
}

// ParseIntentKind validates a textual intent kind (e.g. from an API payload).
func ParseIntentKind(s string) (IntentKind, error) {
	switch k := IntentKind(s); k {
	case IntentGoTo, IntentNext, IntentPrev, IntentPause, IntentResume:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntent, s)
}
