package carousel

import (
	"context"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/tween"
)

// Watch streams snapshots, starting with the current one. Slow readers only
// see the latest snapshot. The channel is closed when ctx is done or the
// carousel is unmounted.
func (c *Controller) Watch(ctx context.Context) <-chan domain.State {
	ch := make(chan domain.State, 1)

	c.mu.Lock()
	select {
	case <-c.closed:
		c.mu.Unlock()
		close(ch)
		return ch
	default:
	}
	ch <- c.state
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.closed:
		}
		c.mu.Lock()
		if _, ok := c.watchers[ch]; ok {
			delete(c.watchers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}()
	return ch
}

// WatchVisuals streams the sampled slide visuals, starting with the current
// ones, every time a frame changes them. Like Watch it keeps only the latest
// unread frame, so a slow reader skips frames but always sees where a
// transition settled.
func (c *Controller) WatchVisuals(ctx context.Context) <-chan []tween.Visual {
	ch := make(chan []tween.Visual, 1)

	c.mu.Lock()
	select {
	case <-c.closed:
		c.mu.Unlock()
		close(ch)
		return ch
	default:
	}
	ch <- append([]tween.Visual(nil), c.visuals...)
	c.frames[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.closed:
		}
		c.mu.Lock()
		if _, ok := c.frames[ch]; ok {
			delete(c.frames, ch)
			close(ch)
		}
		c.mu.Unlock()
	}()
	return ch
}

func offerFrame(ch chan []tween.Visual, v []tween.Visual) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}

// offer replaces any unread snapshot with s. Callers hold c.mu.
func offer(ch chan domain.State, s domain.State) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// closeWatchers is called by the loop on teardown.
func (c *Controller) closeWatchers() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.watchers {
		delete(c.watchers, ch)
		close(ch)
	}
	for ch := range c.frames {
		delete(c.frames, ch)
		close(ch)
	}
}
