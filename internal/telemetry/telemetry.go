// Package telemetry provides Prometheus metrics for pong matches.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Recorder turns step results into metrics. A nil *Recorder records nothing,
// so callers can pass one around unconditionally.
type Recorder struct {
	registry *prometheus.Registry

	ticks         *prometheus.CounterVec
	bounces       *prometheus.CounterVec
	goals         *prometheus.CounterVec
	ballSpeed     *prometheus.GaugeVec
	rallyBounces  *prometheus.HistogramVec
	rallyTicks    *prometheus.HistogramVec
	sessionsTotal prometheus.Counter
	sessions      prometheus.Gauge
}

// Option configures a Recorder.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace sets the metric namespace. Default "pong".
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithRallyBuckets sets the histogram buckets for bounces per rally.
func WithRallyBuckets(b []float64) Option {
	return func(o *options) { o.buckets = b }
}

// NewRecorder registers the pong metrics on reg.
func NewRecorder(reg *prometheus.Registry, opts ...Option) *Recorder {
	o := options{
		namespace: "pong",
		buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
	}
	for _, opt := range opts {
		opt(&o)
	}

	auto := promauto.With(reg)
	return &Recorder{
		registry: reg,
		ticks: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "ticks_total",
			Help:      "Simulated ticks, paused ticks excluded",
		}, []string{"variant"}),
		bounces: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "bounces_total",
			Help:      "Ball bounces by surface",
		}, []string{"variant", "surface"}),
		goals: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "goals_total",
			Help:      "Goals by scoring side",
		}, []string{"variant", "side"}),
		ballSpeed: auto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "ball_speed",
			Help:      "Latest ball speed in world units per second",
		}, []string{"variant"}),
		rallyBounces: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "rally_bounces",
			Help:      "Paddle bounces per finished rally",
			Buckets:   o.buckets,
		}, []string{"variant"}),
		rallyTicks: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "rally_ticks",
			Help:      "Duration of finished rallies in ticks",
			Buckets:   prometheus.ExponentialBuckets(64, 2, 8),
		}, []string{"variant"}),
		sessionsTotal: auto.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "sessions_total",
			Help:      "Matches started",
		}),
		sessions: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "sessions_active",
			Help:      "Matches in progress",
		}),
	}
}

// Observe records one simulated tick of variant.
func (r *Recorder) Observe(variant string, res core.StepResult) {
	if r == nil || res.State.Paused {
		return
	}

	r.ticks.WithLabelValues(variant).Inc()
	r.ballSpeed.WithLabelValues(variant).Set(res.BallSpeed)

	for _, c := range res.Cues {
		switch c {
		case core.CueBounce:
			r.bounces.WithLabelValues(variant, "paddle").Inc()
		case core.CueWall:
			r.bounces.WithLabelValues(variant, "wall").Inc()
		}
	}

	if res.Rally != nil {
		r.ObserveRally(variant, *res.Rally)
	}
}

// ObserveRally records a finished rally and the goal that ended it.
func (r *Recorder) ObserveRally(variant string, rally core.RallyReport) {
	if r == nil {
		return
	}

	scorer := "left"
	if rally.Conceded == core.Player1 {
		scorer = "right"
	}
	r.goals.WithLabelValues(variant, scorer).Inc()
	r.rallyBounces.WithLabelValues(variant).Observe(float64(rally.Bounces))
	r.rallyTicks.WithLabelValues(variant).Observe(float64(rally.Ticks))
}

// SessionStarted marks a match as in progress.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessionsTotal.Inc()
	r.sessions.Inc()
}

// SessionEnded marks a match as finished.
func (r *Recorder) SessionEnded() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
