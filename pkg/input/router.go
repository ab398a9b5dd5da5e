package input

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
)

// Dispatcher is the single entry point every input source funnels into.
// carousel.Controller implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent domain.Intent) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, intent domain.Intent) error

func (f DispatcherFunc) Dispatch(ctx context.Context, intent domain.Intent) error {
	return f(ctx, intent)
}

// Direction of an arrow button.
type Direction int

const (
	Left Direction = iota
	Right
)

// Router turns raw UI events into intents for a Dispatcher.
type Router struct {
	d Dispatcher
}

// NewRouter creates a router delivering to d.
func NewRouter(d Dispatcher) *Router {
	return &Router{d: d}
}

// Arrow handles a click on the previous/next buttons.
func (r *Router) Arrow(ctx context.Context, dir Direction) error {
	return r.d.Dispatch(ctx, ArrowIntent(dir))
}

// Dot handles a click on the pagination dot for slide i.
func (r *Router) Dot(ctx context.Context, i int) error {
	return r.d.Dispatch(ctx, domain.GoTo(i, domain.SourceDot))
}

// Key handles a keyboard key by name (DOM KeyboardEvent.key style).
// It reports whether the key was mapped; unmapped keys are ignored.
func (r *Router) Key(ctx context.Context, name string) (bool, error) {
	intent, ok := KeyIntent(name)
	if !ok {
		return false, nil
	}
	return true, r.d.Dispatch(ctx, intent)
}

// Hover handles the pointer entering (true) or leaving (false) the carousel.
func (r *Router) Hover(ctx context.Context, inside bool) error {
	if inside {
		return r.d.Dispatch(ctx, domain.Pause(domain.SourcePointer))
	}
	return r.d.Dispatch(ctx, domain.Resume(domain.SourcePointer))
}

// ArrowIntent maps a button direction to an intent.
func ArrowIntent(dir Direction) domain.Intent {
	if dir == Left {
		return domain.Prev(domain.SourceArrow)
	}
	return domain.Next(domain.SourceArrow)
}

// KeyIntent maps ArrowLeft and ArrowRight; every other key is ignored.
func KeyIntent(name string) (domain.Intent, bool) {
	switch name {
	case KeyArrowLeft:
		return domain.Prev(domain.SourceKeyboard), true
	case KeyArrowRight:
		return domain.Next(domain.SourceKeyboard), true
	}
	return domain.Intent{}, false
}

// Resolve computes the target index of a navigation intent.
// Prev and next step by one with wrap-around; goto indices are clamped by modulo.
// ok is false for playback intents and empty carousels.
func Resolve(intent domain.Intent, current, count int) (target int, ok bool) {
	if count <= 0 {
		return 0, false
	}
	switch intent.Kind {
	case domain.IntentNext:
		return (current + 1 + count) % count, true
	case domain.IntentPrev:
		return (current - 1 + count) % count, true
	case domain.IntentGoTo:
		return domain.Wrap(intent.Index, count), true
	}
	return 0, false
}
