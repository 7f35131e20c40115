// Package metrics exposes the gateway's Prometheus instrumentation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	latency  prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eliza_gateway",
			Name:      "requests_total",
			Help:      "Handled requests by HTTP status code.",
		}, []string{"code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "eliza_gateway",
			Name:      "request_duration_seconds",
			Help:      "End-to-end request latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
	}
	m.registry.MustRegister(m.requests, m.latency)
	return m
}

// Observe records one handled request.
func (m *Metrics) Observe(statusCode int, elapsed time.Duration) {
	m.requests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	m.latency.Observe(elapsed.Seconds())
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
