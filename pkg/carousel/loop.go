package carousel

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/folio/pkg/autoplay"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/input"
	"github.com/aretw0/folio/pkg/tween"
	"github.com/jonboulle/clockwork"
)

// loop holds everything owned by the event loop goroutine.
type loop struct {
	c      *Controller
	engine *tween.Engine
	sched  *autoplay.Scheduler

	frames    clockwork.Ticker // nil while no transition is in flight
	lastFrame time.Time

	active  int
	paused  bool
	seq     uint64
	pending *tween.Transition
	event   *domain.TransitionEvent
}

func newLoop(c *Controller) *loop {
	return &loop{
		c:      c,
		engine: tween.New(c.reg.Len(), c.startIndex, tween.WithTiming(c.timing)),
		sched:  autoplay.New(c.interval, autoplay.WithClock(c.clock)),
		active: c.startIndex,
	}
}

func (l *loop) run(ctx context.Context) {
	defer l.teardown()

	for {
		var frames <-chan time.Time
		if l.frames != nil {
			frames = l.frames.Chan()
		}

		select {
		case <-ctx.Done():
			return
		case req := <-l.c.requests:
			if ctx.Err() != nil {
				req.reply <- domain.ErrClosed
				return
			}
			req.reply <- l.apply(ctx, req.intent)
		case <-l.sched.C():
			if ctx.Err() != nil {
				return
			}
			if err := l.apply(ctx, domain.Next(domain.SourceAutoplay)); err != nil {
				l.c.logger.Error("autoplay advance failed", "session_id", l.c.sessionID, "err", err)
			}
			// A single slide never navigates, so re-arm explicitly.
			l.sched.Restart()
			l.c.publish(l.snapshot(), l)
		case <-frames:
			if ctx.Err() != nil {
				return
			}
			l.frame(ctx)
		}
	}
}

func (l *loop) apply(ctx context.Context, intent domain.Intent) error {
	switch intent.Kind {
	case domain.IntentPause:
		if l.paused {
			return nil
		}
		l.paused = true
		l.sched.Pause()
		l.c.publish(l.snapshot(), l)
		l.playbackHook(ctx, domain.EventPause, intent.Source, l.c.hooks.OnPause)
		return nil

	case domain.IntentResume:
		if !l.paused {
			return nil
		}
		l.paused = false
		l.sched.Resume()
		l.c.publish(l.snapshot(), l)
		l.playbackHook(ctx, domain.EventResume, intent.Source, l.c.hooks.OnResume)
		return nil

	case domain.IntentGoTo, domain.IntentNext, domain.IntentPrev:
		target, _ := input.Resolve(intent, l.active, l.c.reg.Len())
		if target == l.active {
			return nil
		}
		l.goTo(ctx, target, intent.Source)
		return nil
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownIntent, intent.Kind)
}

func (l *loop) goTo(ctx context.Context, target int, source domain.Source) {
	prev, prevEvent := l.pending, l.event

	l.pending = l.engine.Transition(l.active, target)
	l.event = &domain.TransitionEvent{
		EventBase: l.eventBase(domain.EventTransitionStart),
		From:      l.active,
		To:        target,
		Source:    source,
	}
	l.active = target
	l.seq++

	if l.frames == nil {
		l.frames = l.c.clock.NewTicker(l.c.frameInterval)
		l.lastFrame = l.c.clock.Now()
	}
	l.sched.Restart()

	if prev != nil {
		l.c.logger.Debug("transition superseded",
			"session_id", l.c.sessionID, "from", prevEvent.From, "to", prevEvent.To)
		if h := l.c.hooks.OnTransitionCancel; h != nil {
			evt := *prevEvent
			evt.EventBase = l.eventBase(domain.EventTransitionCancel)
			evt.Elapsed = prev.Elapsed()
			h(ctx, &evt)
		}
	}

	l.c.logger.Debug("transition started",
		"session_id", l.c.sessionID, "from", l.event.From, "to", target, "source", source)
	if h := l.c.hooks.OnTransitionStart; h != nil {
		evt := *l.event
		h(ctx, &evt)
	}
	l.c.publish(l.snapshot(), l)
}

func (l *loop) frame(ctx context.Context) {
	now := l.c.clock.Now()
	dt := now.Sub(l.lastFrame)
	l.lastFrame = now

	if l.engine.Step(dt) {
		l.c.publishFrame(l)
		return
	}

	l.frames.Stop()
	l.frames = nil

	if l.pending != nil {
		done := l.pending
		evt := *l.event
		l.pending, l.event = nil, nil

		evt.EventBase = l.eventBase(domain.EventTransitionComplete)
		evt.Elapsed = done.Elapsed()
		l.c.logger.Debug("transition complete",
			"session_id", l.c.sessionID, "from", evt.From, "to", evt.To, "elapsed", evt.Elapsed)
		if h := l.c.hooks.OnTransitionComplete; h != nil {
			h(ctx, &evt)
		}
	}
	l.c.publish(l.snapshot(), l)
}

func (l *loop) playbackHook(ctx context.Context, typ domain.EventType, source domain.Source, h func(context.Context, *domain.PlaybackEvent)) {
	l.c.logger.Debug("playback changed", "session_id", l.c.sessionID, "event", typ, "source", source)
	if h == nil {
		return
	}
	h(ctx, &domain.PlaybackEvent{
		EventBase:   l.eventBase(typ),
		ActiveIndex: l.active,
		Source:      source,
	})
}

func (l *loop) eventBase(typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: l.c.clock.Now(),
		Type:      typ,
		SessionID: l.c.sessionID,
	}
}

func (l *loop) snapshot() domain.State {
	return domain.State{
		SessionID:     l.c.sessionID,
		ActiveIndex:   l.active,
		SlideCount:    l.c.reg.Len(),
		Paused:        l.paused,
		Transitioning: l.engine.Running(),
		Sequence:      l.seq,
	}
}

// teardown runs on the loop goroutine after ctx is done. It never publishes
// and never fires hooks.
func (l *loop) teardown() {
	l.sched.Stop()
	if l.frames != nil {
		l.frames.Stop()
		l.frames = nil
	}
	l.engine.Cancel()
	l.pending, l.event = nil, nil

	l.c.mu.Lock()
	l.c.deadline = time.Time{}
	l.c.mu.Unlock()

	l.c.closeWatchers()
	close(l.c.closed)
	l.c.logger.Debug("carousel unmounted", "session_id", l.c.sessionID)
}
