package carousel

import (
	"log/slog"
	"time"

	"github.com/aretw0/folio/internal/logging"
	"github.com/aretw0/folio/pkg/autoplay"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/jonboulle/clockwork"
)

// DefaultFrameInterval paces animation frames (about 60 per second).
const DefaultFrameInterval = 16 * time.Millisecond

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithClock injects the time source for autoplay and animation frames.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithInterval sets the autoplay interval. A non-positive interval disables autoplay.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		c.interval = d
	}
}

// WithFrameInterval sets the animation frame period.
func WithFrameInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.frameInterval = d
		}
	}
}

// WithTiming overrides the transition timing.
func WithTiming(t tween.Timing) Option {
	return func(c *Controller) {
		c.timing = t
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithStartIndex mounts the carousel on a slide other than the first.
func WithStartIndex(i int) Option {
	return func(c *Controller) {
		c.startIndex = i
	}
}

// WithSessionID tags snapshots, events and logs with a session.
func WithSessionID(id string) Option {
	return func(c *Controller) {
		c.sessionID = id
	}
}

func defaults(c *Controller) {
	c.logger = logging.NewNop()
	c.clock = clockwork.NewRealClock()
	c.interval = autoplay.DefaultInterval
	c.frameInterval = DefaultFrameInterval
	c.timing = tween.DefaultTiming()
}
