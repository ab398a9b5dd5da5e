package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTransitionStart    EventType = "transition_start"
	EventTransitionComplete EventType = "transition_complete"
	EventTransitionCancel   EventType = "transition_cancel"
	EventPause              EventType = "pause"
	EventResume             EventType = "resume"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id,omitempty"`
}

// TransitionEvent describes a slide handoff.
type TransitionEvent struct {
	EventBase
	From   int    `json:"from"`
	To     int    `json:"to"`
	Source Source `json:"source"`

	// Elapsed is the animation time consumed when the transition completed or was cancelled.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

// PlaybackEvent describes a change on the paused/running axis.
type PlaybackEvent struct {
	EventBase
	ActiveIndex int    `json:"active_index"`
	Source      Source `json:"source"`
}

// LifecycleHooks defines callbacks for carousel observability.
// Hooks run on the carousel's own goroutine and must not block.
type LifecycleHooks struct {
	OnTransitionStart    func(context.Context, *TransitionEvent)
	OnTransitionComplete func(context.Context, *TransitionEvent)
	OnTransitionCancel   func(context.Context, *TransitionEvent)
	OnPause              func(context.Context, *PlaybackEvent)
	OnResume             func(context.Context, *PlaybackEvent)
}

// MergeHooks chains several hook sets; each callback runs in the given order.
func MergeHooks(sets ...LifecycleHooks) LifecycleHooks {
	var merged LifecycleHooks
	for _, h := range sets {
		merged.OnTransitionStart = chain(merged.OnTransitionStart, h.OnTransitionStart)
		merged.OnTransitionComplete = chain(merged.OnTransitionComplete, h.OnTransitionComplete)
		merged.OnTransitionCancel = chain(merged.OnTransitionCancel, h.OnTransitionCancel)
		merged.OnPause = chain(merged.OnPause, h.OnPause)
		merged.OnResume = chain(merged.OnResume, h.OnResume)
	}
	return merged
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}
