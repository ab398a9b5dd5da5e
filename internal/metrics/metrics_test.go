package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHooks_RecordEvents(t *testing.T) {
	c := New(prometheus.NewRegistry())
	h := c.Hooks()
	ctx := context.Background()

	h.OnTransitionStart(ctx, &domain.TransitionEvent{From: 0, To: 1, Source: domain.SourceAutoplay})
	h.OnTransitionStart(ctx, &domain.TransitionEvent{From: 1, To: 2, Source: domain.SourceDot})
	h.OnTransitionCancel(ctx, &domain.TransitionEvent{From: 1, To: 2, Source: domain.SourceDot})
	h.OnTransitionComplete(ctx, &domain.TransitionEvent{Elapsed: 750 * time.Millisecond})
	h.OnPause(ctx, &domain.PlaybackEvent{Source: domain.SourcePointer})
	h.OnResume(ctx, &domain.PlaybackEvent{Source: domain.SourcePointer})
	h.OnPause(ctx, &domain.PlaybackEvent{Source: domain.SourceKeyboard})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Transitions.WithLabelValues("autoplay")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Transitions.WithLabelValues("dot")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Superseded))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.PlaybackChanges.WithLabelValues("paused")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PlaybackChanges.WithLabelValues("playing")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.TransitionDuration))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	c := New(nil)
	c.SetActiveSessions(3)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "folio_active_sessions 3")
}
