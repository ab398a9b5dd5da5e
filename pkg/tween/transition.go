package tween

import (
	"errors"
	"time"
)

var (
	// ErrSuperseded is reported by a transition replaced by a newer one.
	ErrSuperseded = errors.New("transition superseded")

	// ErrCancelled is reported by a transition aborted through Engine.Cancel.
	ErrCancelled = errors.New("transition cancelled")
)

// Transition is a handle on one handoff. It is finished exactly once.
type Transition struct {
	From int
	To   int

	done    chan struct{}
	err     error
	elapsed time.Duration
}

func newTransition(from, to int) *Transition {
	return &Transition{From: from, To: to, done: make(chan struct{})}
}

// Done is closed when the transition completes, is superseded or is cancelled.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Err is nil until Done is closed, and nil afterwards if the transition ran to completion.
func (t *Transition) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Elapsed returns the animation time consumed. Valid once Done is closed.
func (t *Transition) Elapsed() time.Duration {
	select {
	case <-t.done:
		return t.elapsed
	default:
		return 0
	}
}

func (t *Transition) finish(err error, elapsed time.Duration) {
	t.err = err
	t.elapsed = elapsed
	close(t.done)
}
