package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractWait = 2 * time.Second

// RunBroadcasterContract runs a suite of tests to verify that a Broadcaster implementation
// adheres to the defined interface contract. The broadcaster is not closed by the suite.
func RunBroadcasterContract(t *testing.T, b Broadcaster) {
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Publish and Receive", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, err := b.Subscribe(ctx, sessionID)
		require.NoError(t, err, "Subscribe should not return error")

		old := domain.NewState(sessionID, 4)
		next := old
		next.ActiveIndex = 2
		diff := domain.Diff(&old, &next)

		require.NoError(t, b.Publish(ctx, sessionID, diff), "Publish should not return error")

		got := receive(t, ch)
		assert.Equal(t, sessionID, got.SessionID)
		require.NotNil(t, got.ActiveIndex)
		assert.Equal(t, 2, *got.ActiveIndex)
	})

	t.Run("Fan Out", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch1, err := b.Subscribe(ctx, sessionID)
		require.NoError(t, err)
		ch2, err := b.Subscribe(ctx, sessionID)
		require.NoError(t, err)

		state := domain.NewState(sessionID, 3)
		require.NoError(t, b.Publish(ctx, sessionID, domain.Diff(nil, &state)))

		for _, ch := range []<-chan *domain.StateDiff{ch1, ch2} {
			got := receive(t, ch)
			require.NotNil(t, got.SlideCount)
			assert.Equal(t, 3, *got.SlideCount)
		}
	})

	t.Run("Channels Are Isolated", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		other, err := b.Subscribe(ctx, sessionID+"-other")
		require.NoError(t, err)
		mine, err := b.Subscribe(ctx, sessionID)
		require.NoError(t, err)

		state := domain.NewState(sessionID, 2)
		require.NoError(t, b.Publish(ctx, sessionID, domain.Diff(nil, &state)))

		receive(t, mine)
		select {
		case d := <-other:
			t.Fatalf("unexpected diff on isolated channel: %+v", d)
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Cancel Closes Subscription", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ch, err := b.Subscribe(ctx, sessionID)
		require.NoError(t, err)

		cancel()
		assert.Eventually(t, func() bool {
			select {
			case _, ok := <-ch:
				return !ok
			default:
				return false
			}
		}, contractWait, 10*time.Millisecond, "channel should close after cancel")
	})

	t.Run("Publish Without Subscribers", func(t *testing.T) {
		state := domain.NewState(sessionID+"-nobody", 1)
		assert.NoError(t, b.Publish(context.Background(), sessionID+"-nobody", domain.Diff(nil, &state)))
	})
}

// RunSlideSourceContract verifies that a SlideSource yields the expected slides in order
// and that callers cannot corrupt the source through the returned slice.
func RunSlideSourceContract(t *testing.T, src SlideSource, want []domain.Slide) {
	ctx := context.Background()

	t.Run("Load In Order", func(t *testing.T) {
		got, err := src.LoadSlides(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Returned Slice Is A Copy", func(t *testing.T) {
		got, err := src.LoadSlides(ctx)
		require.NoError(t, err)
		if len(got) == 0 {
			t.Skip("source is empty")
		}
		got[0].Name = "mutated"

		again, err := src.LoadSlides(ctx)
		require.NoError(t, err)
		assert.Equal(t, want[0].Name, again[0].Name)
	})
}

func receive(t *testing.T, ch <-chan *domain.StateDiff) *domain.StateDiff {
	t.Helper()
	select {
	case d, ok := <-ch:
		require.True(t, ok, "subscription closed unexpectedly")
		require.NotNil(t, d)
		return d
	case <-time.After(contractWait):
		t.Fatal("timed out waiting for diff")
		return nil
	}
}
