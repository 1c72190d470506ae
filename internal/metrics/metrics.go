package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records terminal activity using Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	fetches         *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	sessions        prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_terminal",
				Name:      "fetches_total",
				Help:      "Data fetches by source, trigger and outcome",
			},
			[]string{"source", "trigger", "outcome"},
		),
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "stock_terminal",
				Name:      "refresh_decisions_total",
				Help:      "Auto-refresh decisions taken by the scheduler",
			},
			[]string{"decision"},
		),
		sessions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "stock_terminal",
				Name:      "sessions",
				Help:      "Live sessions",
			},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "stock_terminal",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method", "class"},
		),
	}
	reg.MustRegister(m.fetches, m.refreshes, m.sessions, m.requestDuration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// RecordFetch counts one fetch; err == nil is a success.
func (m *Metrics) RecordFetch(source, trigger string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetches.WithLabelValues(source, trigger, outcome).Inc()
}

// RecordDecision counts one auto-refresh decision.
func (m *Metrics) RecordDecision(decision string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(decision).Inc()
}

// SetSessions sets the live session gauge.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}

// ObserveRequest records one HTTP request. route should be the route template.
func (m *Metrics) ObserveRequest(route, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(route, method, StatusClass(status)).Observe(seconds)
}

// StatusClass buckets an HTTP status code into 1xx..5xx.
func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
