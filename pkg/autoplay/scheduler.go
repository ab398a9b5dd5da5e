// Package autoplay arms the countdown that advances a carousel on its own.
package autoplay

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the time a slide stays on screen before autoplay advances.
const DefaultInterval = 6 * time.Second

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock injects the time source. Tests pass a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// Scheduler is a single re-armable countdown with a paused/running axis.
//
// Every arm starts a full interval; there is no partial-progress resumption.
// The owner reads C in a select loop and calls Restart after each tick.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	clock    clockwork.Clock
	interval time.Duration

	timer   clockwork.Timer
	armedAt time.Time
	paused  bool
	stopped bool
}

// New creates a running, disarmed scheduler. A non-positive interval disables it.
func New(interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:    clockwork.NewRealClock(),
		interval: interval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// C returns the pending tick channel, or nil while paused, stopped or disarmed.
// A nil channel blocks forever in a select, which is what the owner wants.
func (s *Scheduler) C() <-chan time.Time {
	if s.timer == nil {
		return nil
	}
	return s.timer.Chan()
}

// Restart arms a full interval from now, dropping any pending countdown.
// It does nothing while paused or stopped.
func (s *Scheduler) Restart() {
	if s.stopped || s.paused || s.interval <= 0 {
		return
	}
	s.disarm()
	s.timer = s.clock.NewTimer(s.interval)
	s.armedAt = s.clock.Now()
}

// Pause cancels the pending countdown immediately.
func (s *Scheduler) Pause() {
	s.paused = true
	s.disarm()
}

// Resume clears the pause and arms a fresh full interval.
func (s *Scheduler) Resume() {
	s.paused = false
	s.Restart()
}

// Stop cancels the countdown permanently.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.disarm()
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) Stopped() bool {
	return s.stopped
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Deadline returns when the pending countdown fires. ok is false when disarmed.
func (s *Scheduler) Deadline() (deadline time.Time, ok bool) {
	if s.timer == nil {
		return time.Time{}, false
	}
	return s.armedAt.Add(s.interval), true
}

func (s *Scheduler) disarm() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
