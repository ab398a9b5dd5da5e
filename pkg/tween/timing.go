package tween

import "time"

// Timing configures the two overlapping tracks of a handoff.
type Timing struct {
	Out   time.Duration // outgoing slide duration
	In    time.Duration // incoming slide duration
	Delay time.Duration // incoming start, relative to the outgoing start

	OutEase Easing
	InEase  Easing
}

// DefaultTiming returns the standard handoff: 500ms out, 600ms in, starting 150ms later.
func DefaultTiming() Timing {
	return Timing{
		Out:     500 * time.Millisecond,
		In:      600 * time.Millisecond,
		Delay:   150 * time.Millisecond,
		OutEase: EaseInOutQuad,
		InEase:  EaseOutCubic,
	}
}

// Total is the time from start until both tracks have finished.
func (t Timing) Total() time.Duration {
	return max(t.Out, t.Delay+t.In)
}

func (t Timing) normalized() Timing {
	t.Out = max(t.Out, 0)
	t.In = max(t.In, 0)
	t.Delay = max(t.Delay, 0)
	if t.OutEase == nil {
		t.OutEase = Linear
	}
	if t.InEase == nil {
		t.InEase = Linear
	}
	return t
}
