package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/hpgl2svg/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeFailed       = "failed"
)

// Metrics holds the interpreter collectors.
type Metrics struct {
	registry    *prometheus.Registry
	commands    *prometheus.CounterVec
	segments    *prometheus.CounterVec
	penChanges  prometheus.Counter
	conversions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hpgl_commands_total",
				Help: "Total number of interpreted commands",
			},
			[]string{"kind"},
		),
		segments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hpgl_segments_total",
				Help: "Total number of drawn segments",
			},
			[]string{"color"},
		),
		penChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hpgl_pen_changes_total",
			Help: "Total number of pen selections",
		}),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hpgl_conversions_total",
				Help: "Total number of conversions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hpgl_conversion_duration_seconds",
			Help:    "Duration of conversions",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	m.registry.MustRegister(
		m.commands,
		m.segments,
		m.penChanges,
		m.conversions,
		m.duration,
		collectors.NewGoCollector(),
	)
	return m
}

// Hooks returns lifecycle hooks feeding the counters.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			m.commands.WithLabelValues(string(e.Kind)).Inc()
		},
		OnSegment: func(_ context.Context, e *domain.SegmentEvent) {
			m.segments.WithLabelValues(e.Segment.Color).Inc()
		},
		OnPenChange: func(context.Context, *domain.PenEvent) {
			m.penChanges.Inc()
		},
	}
}

// ObserveConversion records the outcome of a conversion started at start.
// invalid is the sentinel marking input errors.
func (m *Metrics) ObserveConversion(start time.Time, err, invalid error) {
	m.duration.Observe(time.Since(start).Seconds())

	outcome := OutcomeOK
	switch {
	case err == nil:
	case invalid != nil && errors.Is(err, invalid):
		outcome = OutcomeInvalidInput
	default:
		outcome = OutcomeFailed
	}
	m.conversions.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
