package carousel

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

type fakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

func testRegistry(t testing.TB, count int) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	for i := 0; i < count; i++ {
		b.Add(fmt.Sprintf("slide-%d", i)).Tag("test")
	}
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

// mount starts a controller on a fake clock and unmounts it when the test ends.
func mount(t *testing.T, count int, opts ...Option) (*Controller, fakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	c, err := New(testRegistry(t, count), append([]Option{WithClock(clock)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

type hookRecorder struct {
	mu        sync.Mutex
	starts    []domain.TransitionEvent
	completes []domain.TransitionEvent
	cancels   []domain.TransitionEvent
	pauses    []domain.PlaybackEvent
	resumes   []domain.PlaybackEvent
}

func (r *hookRecorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionStart: func(_ context.Context, e *domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.starts = append(r.starts, *e)
		},
		OnTransitionComplete: func(_ context.Context, e *domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.completes = append(r.completes, *e)
		},
		OnTransitionCancel: func(_ context.Context, e *domain.TransitionEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.cancels = append(r.cancels, *e)
		},
		OnPause: func(_ context.Context, e *domain.PlaybackEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.pauses = append(r.pauses, *e)
		},
		OnResume: func(_ context.Context, e *domain.PlaybackEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.resumes = append(r.resumes, *e)
		},
	}
}

func (r *hookRecorder) counts() (starts, completes, cancels int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.starts), len(r.completes), len(r.cancels)
}

func (r *hookRecorder) completed() []domain.TransitionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.TransitionEvent(nil), r.completes...)
}

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func activeIndex(c *Controller) func() int {
	return func() int { return c.State().ActiveIndex }
}
