// Package metrics exposes carousel activity as Prometheus collectors.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors groups every folio metric.
type Collectors struct {
	Transitions        *prometheus.CounterVec
	Superseded         prometheus.Counter
	TransitionDuration prometheus.Histogram
	PlaybackChanges    *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
// A nil reg uses a fresh private registry.
func New(reg *prometheus.Registry) *Collectors {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	c := &Collectors{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_transitions_total",
				Help: "Total number of slide transitions started",
			},
			[]string{"source"},
		),
		Superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "folio_transitions_superseded_total",
			Help: "Transitions cancelled by a newer navigation",
		}),
		TransitionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "folio_transition_duration_seconds",
			Help:    "Animation time of completed transitions",
			Buckets: []float64{.1, .25, .5, .75, 1, 1.5, 2, 5},
		}),
		PlaybackChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_playback_changes_total",
				Help: "Pause and resume events",
			},
			[]string{"state"},
		),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "folio_active_sessions",
			Help: "Number of mounted carousels",
		}),
		gatherer: reg,
	}
	reg.MustRegister(c.Transitions, c.Superseded, c.TransitionDuration, c.PlaybackChanges, c.ActiveSessions)
	return c
}

// Hooks records carousel lifecycle events.
func (c *Collectors) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionStart: func(_ context.Context, e *domain.TransitionEvent) {
			c.Transitions.WithLabelValues(string(e.Source)).Inc()
		},
		OnTransitionComplete: func(_ context.Context, e *domain.TransitionEvent) {
			c.TransitionDuration.Observe(e.Elapsed.Seconds())
		},
		OnTransitionCancel: func(_ context.Context, _ *domain.TransitionEvent) {
			c.Superseded.Inc()
		},
		OnPause: func(_ context.Context, _ *domain.PlaybackEvent) {
			c.PlaybackChanges.WithLabelValues("paused").Inc()
		},
		OnResume: func(_ context.Context, _ *domain.PlaybackEvent) {
			c.PlaybackChanges.WithLabelValues("playing").Inc()
		},
	}
}

// SetActiveSessions matches the session.WithActiveObserver signature.
func (c *Collectors) SetActiveSessions(n int) {
	c.ActiveSessions.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
