package tween

import "time"

type track struct {
	index    int
	from, to Visual
	start    time.Duration
	duration time.Duration
	ease     Easing
}

func (tr track) sample(elapsed time.Duration) (Visual, bool) {
	local := elapsed - tr.start
	if local < 0 {
		return tr.from, false
	}
	p := 1.0
	if tr.duration > 0 {
		p = clamp01(float64(local) / float64(tr.duration))
	}
	return Lerp(tr.from, tr.to, tr.ease(p)), local >= tr.duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(e *Engine) {
		e.timing = t.normalized()
	}
}

// Engine samples slide visuals for one carousel.
// It is not safe for concurrent use; the owning controller drives it from a single goroutine.
type Engine struct {
	timing  Timing
	visuals []Visual

	current *Transition
	tracks  []track
	elapsed time.Duration
}

// New creates an engine for count slides with active shown emphasized and
// every other slide at Rest.
func New(count, active int, opts ...Option) *Engine {
	e := &Engine{
		timing:  DefaultTiming(),
		visuals: make([]Visual, count),
	}
	for _, opt := range opts {
		opt(e)
	}
	for i := range e.visuals {
		e.visuals[i] = Rest
	}
	if active >= 0 && active < count {
		e.visuals[active] = Emphasized
		e.visuals[active].Interactive = true
	}
	return e
}

// Timing returns the configured handoff timing.
func (e *Engine) Timing() Timing {
	return e.timing
}

// Transition starts a handoff from one slide to another and returns its handle.
// An in-flight transition is finished with ErrSuperseded first.
func (e *Engine) Transition(from, to int) *Transition {
	if e.current != nil {
		e.current.finish(ErrSuperseded, e.elapsed)
	}

	e.current = newTransition(from, to)
	e.elapsed = 0
	e.tracks = e.tracks[:0]

	for i := range e.visuals {
		v := e.visuals[i]
		v.Interactive = false
		e.visuals[i] = v

		switch {
		case i == to:
			e.tracks = append(e.tracks, track{
				index: i, from: v, to: Emphasized,
				start: e.timing.Delay, duration: e.timing.In, ease: e.timing.InEase,
			})
		case i == from || v.Inline:
			e.tracks = append(e.tracks, track{
				index: i, from: v, to: Rest,
				duration: e.timing.Out, ease: e.timing.OutEase,
			})
		default:
			continue
		}
		e.visuals[i].Inline = true
	}

	return e.current
}

// Step advances the in-flight transition by dt and reports whether one is still running.
// Negative deltas are treated as zero.
func (e *Engine) Step(dt time.Duration) bool {
	if e.current == nil {
		return false
	}
	e.elapsed += max(dt, 0)

	finished := true
	for _, tr := range e.tracks {
		v, done := tr.sample(e.elapsed)
		v.Inline = true
		v.Interactive = false
		e.visuals[tr.index] = v
		finished = finished && done
	}

	to := e.current.To
	if e.elapsed >= e.timing.Delay {
		e.visuals[to].Interactive = true
	}

	if !finished {
		return true
	}

	for i := range e.visuals {
		if i != to {
			e.visuals[i] = Rest
		}
	}
	e.visuals[to] = Emphasized
	e.visuals[to].Interactive = true
	e.visuals[to].Inline = true

	e.current.finish(nil, e.elapsed)
	e.current = nil
	e.tracks = e.tracks[:0]
	return false
}

// Cancel aborts the in-flight transition with ErrCancelled, leaving visuals where they are.
func (e *Engine) Cancel() {
	if e.current == nil {
		return
	}
	e.current.finish(ErrCancelled, e.elapsed)
	e.current = nil
	e.tracks = e.tracks[:0]
}

// Current returns the in-flight transition, or nil.
func (e *Engine) Current() *Transition {
	return e.current
}

// Running reports whether a transition is in flight.
func (e *Engine) Running() bool {
	return e.current != nil
}

// Visuals returns a copy of the sampled visuals.
func (e *Engine) Visuals() []Visual {
	return append([]Visual(nil), e.visuals...)
}
