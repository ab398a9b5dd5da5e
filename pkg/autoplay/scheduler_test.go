package autoplay

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fired(s *Scheduler) bool {
	select {
	case <-s.C():
		return true
	default:
		return false
	}
}

func TestScheduler_FiresAfterInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(DefaultInterval, WithClock(clock))
	assert.Nil(t, s.C(), "disarmed until restarted")

	s.Restart()
	require.NotNil(t, s.C())

	clock.Advance(DefaultInterval - time.Millisecond)
	assert.False(t, fired(s))

	clock.Advance(time.Millisecond)
	assert.True(t, fired(s))
}

func TestScheduler_RestartResetsCountdown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(DefaultInterval, WithClock(clock))
	s.Restart()

	clock.Advance(5 * time.Second)
	s.Restart()
	clock.Advance(5 * time.Second)
	assert.False(t, fired(s), "restart starts a full interval")

	clock.Advance(time.Second)
	assert.True(t, fired(s))
}

func TestScheduler_PauseSuppressesTicks(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(DefaultInterval, WithClock(clock))
	s.Restart()

	clock.Advance(3 * time.Second)
	s.Pause()
	assert.True(t, s.Paused())
	assert.Nil(t, s.C())

	s.Restart()
	assert.Nil(t, s.C(), "restart is ignored while paused")

	clock.Advance(time.Minute)
	assert.Nil(t, s.C())
}

func TestScheduler_ResumeStartsFromZero(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(DefaultInterval, WithClock(clock))
	s.Restart()

	clock.Advance(5 * time.Second)
	s.Pause()
	s.Resume()

	clock.Advance(5 * time.Second)
	assert.False(t, fired(s), "no credit for time elapsed before the pause")
	clock.Advance(time.Second)
	assert.True(t, fired(s))

	deadline, ok := s.Deadline()
	assert.True(t, ok)
	assert.Equal(t, clock.Now(), deadline)
}

func TestScheduler_Stop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := New(DefaultInterval, WithClock(clock))
	s.Restart()
	s.Stop()

	assert.True(t, s.Stopped())
	assert.Nil(t, s.C())
	s.Resume()
	assert.Nil(t, s.C(), "a stopped scheduler never re-arms")
	_, ok := s.Deadline()
	assert.False(t, ok)
}

func TestScheduler_Disabled(t *testing.T) {
	s := New(0, WithClock(clockwork.NewFakeClock()))
	s.Restart()
	assert.Nil(t, s.C())
}
