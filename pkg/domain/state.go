package domain

// State is a read-only snapshot of a carousel.
// The controller owns the live values; presentation layers only ever see copies.
type State struct {
	// SessionID identifies the carousel instance (e.g. a visitor session). Empty for standalone carousels.
	SessionID string `json:"session_id,omitempty"`

	// ActiveIndex is always within [0, SlideCount).
	ActiveIndex int `json:"active_index"`

	// SlideCount is fixed for the lifetime of the carousel.
	SlideCount int `json:"slide_count"`

	// Paused is true while autoplay is suppressed (pointer hover, explicit pause).
	Paused bool `json:"paused"`

	// Transitioning is true while a slide handoff animation is in flight.
	Transitioning bool `json:"transitioning"`

	// Sequence counts accepted navigations. It only grows.
	Sequence uint64 `json:"sequence"`
}

// NewState creates the initial state: first slide, running.
func NewState(sessionID string, slideCount int) State {
	return State{
		SessionID:  sessionID,
		SlideCount: slideCount,
	}
}

// Wrap maps any integer onto [0, count) using modulo arithmetic.
// Negative values wrap from the end, so Wrap(-1, 4) == 3.
// A non-positive count yields 0.
func Wrap(index, count int) int {
	if count <= 0 {
		return 0
	}
	return ((index % count) + count) % count
}
