package carousel

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/input"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/jonboulle/clockwork"
)

// ErrNotStarted is returned by intents and Attach before Start.
var ErrNotStarted = errors.New("carousel not started")

type request struct {
	intent domain.Intent
	reply  chan error
}

// Controller is the carousel state machine. Create it with New, mount it with
// Start and unmount it with Close.
type Controller struct {
	reg *registry.Registry

	clock         clockwork.Clock
	interval      time.Duration
	frameInterval time.Duration
	timing        tween.Timing
	logger        *slog.Logger
	hooks         domain.LifecycleHooks
	startIndex    int
	sessionID     string

	requests chan request

	// lifecycle
	lmu     sync.Mutex
	started bool
	cancel  context.CancelFunc
	closed  chan struct{} // closed once the loop has torn down
	sources sync.WaitGroup

	// published snapshot
	mu       sync.RWMutex
	state    domain.State
	visuals  []tween.Visual
	deadline time.Time
	watchers map[chan domain.State]struct{}
	frames   map[chan []tween.Visual]struct{}
}

// Ensure Controller satisfies the input dispatch contract.
var _ input.Dispatcher = (*Controller)(nil)

// New creates an unmounted controller over reg.
func New(reg *registry.Registry, opts ...Option) (*Controller, error) {
	if reg == nil || reg.Len() == 0 {
		return nil, domain.ErrEmptyRegistry
	}

	c := &Controller{
		reg:      reg,
		requests: make(chan request),
		closed:   make(chan struct{}),
		watchers: make(map[chan domain.State]struct{}),
		frames:   make(map[chan []tween.Visual]struct{}),
	}
	defaults(c)
	for _, opt := range opts {
		opt(c)
	}

	c.startIndex = domain.Wrap(c.startIndex, reg.Len())
	c.state = domain.NewState(c.sessionID, reg.Len())
	c.state.ActiveIndex = c.startIndex
	c.visuals = tween.New(reg.Len(), c.startIndex, tween.WithTiming(c.timing)).Visuals()
	return c, nil
}

// Start mounts the carousel: the event loop begins and autoplay is armed.
// Cancelling ctx unmounts it just like Close.
func (c *Controller) Start(ctx context.Context) error {
	c.lmu.Lock()
	defer c.lmu.Unlock()

	select {
	case <-c.closed:
		return domain.ErrClosed
	default:
	}
	if c.started {
		return errors.New("carousel already started")
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	l := newLoop(c)
	// Arm before the goroutine starts so callers can advance a fake clock right away.
	l.sched.Restart()
	c.publish(l.snapshot(), l)

	c.logger.Debug("carousel mounted",
		"session_id", c.sessionID,
		"slides", c.reg.Len(),
		"interval", c.interval,
	)
	go l.run(ctx)
	return nil
}

// Close unmounts the carousel and waits for its goroutines. It is idempotent.
func (c *Controller) Close() error {
	c.lmu.Lock()
	if !c.started {
		select {
		case <-c.closed:
		default:
			c.started = true
			close(c.closed)
		}
		c.lmu.Unlock()
		return nil
	}
	cancel := c.cancel
	c.lmu.Unlock()

	cancel()
	<-c.closed
	c.sources.Wait()
	return nil
}

// Done is closed once the carousel has been unmounted.
func (c *Controller) Done() <-chan struct{} {
	return c.closed
}

// Dispatch applies an intent and waits until the loop has processed it.
// Navigation to the active slide is accepted as a no-op.
func (c *Controller) Dispatch(ctx context.Context, intent domain.Intent) error {
	c.lmu.Lock()
	started := c.started
	c.lmu.Unlock()
	if !started {
		return ErrNotStarted
	}

	req := request{intent: intent, reply: make(chan error, 1)}
	select {
	case c.requests <- req:
	case <-c.closed:
		return domain.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-c.closed:
		select {
		case err := <-req.reply:
			return err
		default:
			return domain.ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GoTo navigates to slide i. Out of range indices wrap around.
func (c *Controller) GoTo(ctx context.Context, i int) error {
	return c.Dispatch(ctx, domain.GoTo(i, domain.SourceAPI))
}

func (c *Controller) Next(ctx context.Context) error {
	return c.Dispatch(ctx, domain.Next(domain.SourceAPI))
}

func (c *Controller) Prev(ctx context.Context) error {
	return c.Dispatch(ctx, domain.Prev(domain.SourceAPI))
}

// Pause suppresses autoplay until Resume.
func (c *Controller) Pause(ctx context.Context) error {
	return c.Dispatch(ctx, domain.Pause(domain.SourceAPI))
}

// Resume re-enables autoplay with a full interval.
func (c *Controller) Resume(ctx context.Context) error {
	return c.Dispatch(ctx, domain.Resume(domain.SourceAPI))
}

// State returns the current snapshot.
func (c *Controller) State() domain.State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Visuals returns the sampled slide visuals of the last frame.
func (c *Controller) Visuals() []tween.Visual {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]tween.Visual(nil), c.visuals...)
}

// NextAdvance returns when autoplay will advance next. ok is false while paused or unmounted.
func (c *Controller) NextAdvance() (at time.Time, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deadline, !c.deadline.IsZero()
}

// Slides returns a copy of the slide list.
func (c *Controller) Slides() []domain.Slide {
	return c.reg.Slides()
}

// Registry returns the slide registry backing the carousel.
func (c *Controller) Registry() *registry.Registry {
	return c.reg
}

// Attach runs a long-lived input source (e.g. a keyboard reader) until the
// carousel is unmounted.
func (c *Controller) Attach(src input.Source) error {
	c.lmu.Lock()
	defer c.lmu.Unlock()

	select {
	case <-c.closed:
		return domain.ErrClosed
	default:
	}
	if !c.started {
		return ErrNotStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.sources.Add(1)
	go func() {
		defer c.sources.Done()
		defer cancel()
		go func() {
			select {
			case <-c.closed:
				cancel()
			case <-ctx.Done():
			}
		}()
		if err := src.Run(ctx, c); err != nil && !errors.Is(err, domain.ErrClosed) && !errors.Is(err, context.Canceled) {
			c.logger.Warn("input source stopped", "session_id", c.sessionID, "err", err)
		}
	}()
	return nil
}

// publish stores a new snapshot and notifies watchers when the state changed.
// Only the loop goroutine (or Start, before the loop exists) calls it.
func (c *Controller) publish(s domain.State, l *loop) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := c.state != s
	c.state = s
	c.setVisuals(l.engine.Visuals())
	if at, ok := l.sched.Deadline(); ok && !l.sched.Paused() {
		c.deadline = at
	} else {
		c.deadline = time.Time{}
	}

	if !changed {
		return
	}
	for w := range c.watchers {
		offer(w, s)
	}
}

// publishFrame refreshes the visuals only.
func (c *Controller) publishFrame(l *loop) {
	c.mu.Lock()
	c.setVisuals(l.engine.Visuals())
	c.mu.Unlock()
}

// setVisuals stores v and hands it to frame watchers when it differs. Callers hold c.mu.
func (c *Controller) setVisuals(v []tween.Visual) {
	if slices.Equal(c.visuals, v) {
		return
	}
	c.visuals = v
	for ch := range c.frames {
		offerFrame(ch, append([]tween.Visual(nil), v...))
	}
}
