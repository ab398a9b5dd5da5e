/*
Package carousel implements the project carousel controller.

A Controller composes the slide registry, the autoplay scheduler and the
transition engine behind one event loop goroutine. Every mutation (intents
from arrows, dots, keys, the pointer or the API; autoplay ticks; animation
frames) is applied on that goroutine in arrival order, so the active index and
the paused flag need no locking. Readers get snapshots.

# Lifecycle

	c, _ := carousel.New(reg, carousel.WithLogger(logger))
	_ = c.Start(ctx)          // mount: autoplay armed
	_ = c.Next(ctx)           // intents wait until applied
	for s := range c.Watch(ctx) { ... }
	c.Close()                 // unmount

Close stops the autoplay timer and frame ticker, cancels an in-flight
transition without firing hooks, detaches attached input sources and closes
watchers. Any intent after that fails with domain.ErrClosed and the snapshot
never changes again. Cancelling the context given to Start has the same effect.
*/
package carousel
