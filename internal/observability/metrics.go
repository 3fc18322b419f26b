// Package observability counts what happens in a planner session. Metrics
// live on a private registry and are written out as a Prometheus textfile
// on exit, since tdp exposes no HTTP endpoint.
package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Tiliavir/trivial-day-planner/internal/category"
)

const namespace = "tdp"

// Metrics is safe for concurrent use. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted   *prometheus.CounterVec
	trackedSeconds    *prometheus.CounterVec
	sessionDuration   prometheus.Histogram
	suggestionChoices *prometheus.CounterVec
	likeToggles       prometheus.Counter
	lastCommit        prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "sessions_started_total",
			Help:      "Timer sessions started, by activity category.",
		}, []string{"category"}),
		trackedSeconds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "committed_seconds_total",
			Help:      "Seconds committed to activity totals on pause or stop, by category.",
		}, []string{"category"}),
		sessionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "session_duration_seconds",
			Help:      "Length of committed timer sessions.",
			Buckets:   []float64{60, 300, 900, 1800, 3600, 7200, 14400},
		}),
		suggestionChoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "decisions_total",
			Help:      "Suggestions accepted or rejected.",
		}, []string{"decision"}),
		likeToggles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "like_toggles_total",
			Help:      "Like button presses on feed posts.",
		}),
		lastCommit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tracker",
			Name:      "last_commit_timestamp_seconds",
			Help:      "Unix timestamp of the most recent pause or stop that committed time.",
		}),
	}
	m.registry.MustRegister(
		m.sessionsStarted,
		m.trackedSeconds,
		m.sessionDuration,
		m.suggestionChoices,
		m.likeToggles,
		m.lastCommit,
	)
	return m
}

func (m *Metrics) SessionStarted(c category.Category) {
	if m == nil {
		return
	}
	m.sessionsStarted.WithLabelValues(string(c)).Inc()
}

// Committed records seconds folded into an activity total at ts.
func (m *Metrics) Committed(c category.Category, seconds int64, ts time.Time) {
	if m == nil || seconds <= 0 {
		return
	}
	m.trackedSeconds.WithLabelValues(string(c)).Add(float64(seconds))
	m.sessionDuration.Observe(float64(seconds))
	if !ts.IsZero() {
		m.lastCommit.Set(float64(ts.Unix()))
	}
}

// SuggestionDecision records "accepted" or "rejected".
func (m *Metrics) SuggestionDecision(decision string) {
	if m == nil {
		return
	}
	m.suggestionChoices.WithLabelValues(decision).Inc()
}

func (m *Metrics) LikeToggled() {
	if m == nil {
		return
	}
	m.likeToggles.Inc()
}

// Gather returns the current metric families.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	if m == nil {
		return nil, nil
	}
	return m.registry.Gather()
}

// WriteTextfile writes the registry in text exposition format. An empty path
// is a no-op.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
