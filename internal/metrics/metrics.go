// Package metrics exposes binder activity as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/aretw0/cardmenu/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one process. Each instance has its own
// registry so tests can create as many as they need.
type Metrics struct {
	registry    *prometheus.Registry
	dispatches  *prometheus.CounterVec
	modeChanges *prometheus.CounterVec
	failures    *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardmenu_dispatches_total",
				Help: "Total number of successful dispatches",
			},
			[]string{"mode", "action", "kind"},
		),
		modeChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardmenu_mode_changes_total",
				Help: "Total number of mode changes",
			},
			[]string{"from", "to"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cardmenu_dispatch_errors_total",
				Help: "Total number of failed dispatches",
			},
			[]string{"mode", "reason"},
		),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cardmenu_sessions",
			Help: "Number of live sessions",
		}),
	}
	m.registry.MustRegister(
		m.dispatches,
		m.modeChanges,
		m.failures,
		m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Hooks returns lifecycle hooks that record binder events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnDispatch: func(e *domain.DispatchEvent) {
			m.dispatches.WithLabelValues(string(e.Mode), e.Action, e.Kind.String()).Inc()
		},
		OnModeChange: func(e *domain.ModeChangeEvent) {
			m.modeChanges.WithLabelValues(string(e.Mode), string(e.To)).Inc()
		},
		OnError: func(e *domain.ErrorEvent) {
			m.failures.WithLabelValues(string(e.Mode), Reason(e.Err)).Inc()
		},
	}
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Reason maps a dispatch error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnhandledAction):
		return "unhandled"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrInvalidConfig):
		return "invalid_config"
	default:
		return "handler"
	}
}
