package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/adapters/memory"
	"github.com/aretw0/folio/pkg/carousel"
	"github.com/aretw0/folio/pkg/domain"
	"github.com/aretw0/folio/pkg/registry"
	"github.com/aretw0/folio/pkg/session"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	b := registry.NewBuilder()
	b.Add("one").Add("two").Add("three")
	reg, err := b.Build()
	require.NoError(t, err)
	return reg
}

func TestManager_GetReusesController(t *testing.T) {
	m := session.NewManager(session.NewFactory(testRegistry(t), carousel.WithInterval(0)))
	defer m.Close()
	ctx := context.Background()

	c1, err := m.Get(ctx, "a")
	require.NoError(t, err)
	c2, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, "a", c1.State().SessionID)

	other, err := m.Get(ctx, "b")
	require.NoError(t, err)
	assert.NotSame(t, c1, other)
	assert.Equal(t, []string{"a", "b"}, m.List())
}

func TestManager_ConcurrentFirstAccess(t *testing.T) {
	var mu sync.Mutex
	created := 0
	reg := testRegistry(t)
	factory := func(ctx context.Context, id string) (*carousel.Controller, error) {
		mu.Lock()
		created++
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		return carousel.New(reg, carousel.WithSessionID(id), carousel.WithInterval(0))
	}
	m := session.NewManager(factory)
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Get(context.Background(), "race-test")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, m.Len())
}

func TestManager_Lookup(t *testing.T) {
	m := session.NewManager(session.NewFactory(testRegistry(t)))
	defer m.Close()

	_, err := m.Lookup("missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	c, err := m.Get(context.Background(), "present")
	require.NoError(t, err)
	found, err := m.Lookup("present")
	require.NoError(t, err)
	assert.Same(t, c, found)
}

func TestManager_ReapIdle(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var active []int
	m := session.NewManager(
		session.NewFactory(testRegistry(t), carousel.WithClock(clock)),
		session.WithClock(clock),
		session.WithTTL(time.Minute),
		session.WithActiveObserver(func(n int) { active = append(active, n) }),
	)
	defer m.Close()
	ctx := context.Background()

	idle, err := m.Get(ctx, "idle")
	require.NoError(t, err)
	_, release, err := m.Acquire(ctx, "streaming")
	require.NoError(t, err)

	clock.Advance(30 * time.Second)
	assert.Zero(t, m.Reap())

	clock.Advance(31 * time.Second)
	assert.Equal(t, 1, m.Reap(), "held sessions survive the TTL")
	assert.Equal(t, []string{"streaming"}, m.List())
	<-idle.Done()
	assert.ErrorIs(t, idle.Next(ctx), domain.ErrClosed)

	release()
	release() // idempotent
	clock.Advance(time.Minute)
	assert.Equal(t, 1, m.Reap())
	assert.Zero(t, m.Len())
	assert.Equal(t, []int{1, 2, 1, 0}, active)
}

func TestManager_NewControllerAfterReap(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := session.NewManager(session.NewFactory(testRegistry(t), carousel.WithClock(clock)),
		session.WithClock(clock), session.WithTTL(time.Second))
	defer m.Close()
	ctx := context.Background()

	c1, err := m.Get(ctx, "s")
	require.NoError(t, err)
	require.NoError(t, c1.Next(ctx))

	clock.Advance(2 * time.Second)
	m.Reap()

	c2, err := m.Get(ctx, "s")
	require.NoError(t, err)
	assert.NotSame(t, c1, c2)
	assert.Equal(t, 0, c2.State().ActiveIndex, "nothing is persisted")
}

func TestManager_Delete(t *testing.T) {
	m := session.NewManager(session.NewFactory(testRegistry(t)))
	defer m.Close()
	ctx := context.Background()

	c, err := m.Get(ctx, "s")
	require.NoError(t, err)
	require.NoError(t, m.Delete(ctx, "s"))
	<-c.Done()
	assert.ErrorIs(t, m.Delete(ctx, "s"), domain.ErrSessionNotFound)
}

func TestManager_PublishesDiffs(t *testing.T) {
	b := memory.NewBroadcaster()
	defer b.Close()
	m := session.NewManager(session.NewFactory(testRegistry(t), carousel.WithInterval(0)),
		session.WithBroadcaster(b))
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	diffs, err := b.Subscribe(ctx, "viewer")
	require.NoError(t, err)

	c, err := m.Get(ctx, "viewer")
	require.NoError(t, err)

	first := <-diffs
	require.NotNil(t, first.SlideCount, "first diff is a full snapshot")
	assert.Equal(t, 3, *first.SlideCount)

	require.NoError(t, c.GoTo(ctx, 2))
	var got *domain.StateDiff
	assert.Eventually(t, func() bool {
		select {
		case d := <-diffs:
			if d.ActiveIndex != nil {
				got = d
				return true
			}
		default:
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)
	require.NotNil(t, got)
	assert.Equal(t, 2, *got.ActiveIndex)
	assert.Equal(t, "viewer", got.SessionID)
}

func TestManager_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	m := session.NewManager(func(context.Context, string) (*carousel.Controller, error) { return nil, boom })
	defer m.Close()

	_, err := m.Get(context.Background(), "s")
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, m.Len())
}

func TestManager_Close(t *testing.T) {
	m := session.NewManager(session.NewFactory(testRegistry(t)))
	c, err := m.Get(context.Background(), "s")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	<-c.Done()
	_, err = m.Get(context.Background(), "s")
	assert.ErrorIs(t, err, domain.ErrClosed)
	assert.NoError(t, m.Close())
}

func TestManager_Run(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := session.NewManager(session.NewFactory(testRegistry(t), carousel.WithClock(clock)),
		session.WithClock(clock), session.WithTTL(4*time.Second))
	defer m.Close()

	_, err := m.Get(context.Background(), "s")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.NoError(t, clock.BlockUntilContext(ctx, 2)) // carousel autoplay timer + reaper ticker
	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return m.Len() == 0 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestManager_MaxSessions(t *testing.T) {
	m := session.NewManager(session.NewFactory(testRegistry(t), carousel.WithInterval(0)),
		session.WithMaxSessions(2))
	defer m.Close()
	ctx := context.Background()

	_, err := m.Get(ctx, "a")
	require.NoError(t, err)
	_, err = m.Get(ctx, "b")
	require.NoError(t, err)

	_, err = m.Get(ctx, "c")
	assert.ErrorIs(t, err, domain.ErrSessionLimit)
	_, _, err = m.Acquire(ctx, "c")
	assert.ErrorIs(t, err, domain.ErrSessionLimit)
	assert.Equal(t, 2, m.Len())

	_, err = m.Get(ctx, "a")
	assert.NoError(t, err, "mounted sessions stay reachable at the cap")

	require.NoError(t, m.Delete(ctx, "b"))
	_, err = m.Get(ctx, "c")
	assert.NoError(t, err, "a freed slot can be reused")
}
