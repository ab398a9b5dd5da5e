/*
Package tween animates the handoff between two carousel slides.

The engine owns one Visual per slide and interpolates them explicitly: callers
feed elapsed time through Step from a single tick source (a frame ticker, a
test loop) and read the sampled values back with Visuals. There is no global
timeline and nothing runs in the background.

# Handoff

Transition(from, to) fades the outgoing slide to the Rest visual while the
incoming slide animates from Rest to Emphasized. The incoming track starts
Timing.Delay after the outgoing one, so the two overlap:

	out  |==========|            (Timing.Out)
	in      |============|       (Timing.Delay + Timing.In)

At start every slide stops being interactive; once the incoming phase begins
only the target is. When the last track finishes, every slide except the
target drops its inline state and returns to Rest, and the transition's Done
channel is closed.

# Supersession

At most one transition is in flight. Starting another one finishes the
previous with ErrSuperseded and animates from whatever was sampled last, so
an interrupted slide never jumps. Any third slide still carrying inline state
is animated back to Rest by the new transition.
*/
package tween
