package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Endpoint collects per-endpoint latency and error counts for the MCP routes.
type Endpoint struct {
	Latency *prometheus.HistogramVec
	Errors  *prometheus.CounterVec
}

func NewEndpoint(reg prometheus.Registerer) *Endpoint {
	m := &Endpoint{
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "mcp",
				Subsystem: "endpoint",
				Name:      "latency_seconds",
				Help:      "Latency of MCP endpoints",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
			},
			[]string{"endpoint"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mcp",
				Subsystem: "endpoint",
				Name:      "errors_total",
				Help:      "Errors by MCP endpoint and code",
			},
			[]string{"endpoint", "code"},
		),
	}
	reg.MustRegister(m.Latency, m.Errors)
	return m
}

func (m *Endpoint) Observe(endpoint string, seconds float64) {
	m.Latency.WithLabelValues(endpoint).Observe(seconds)
}

func (m *Endpoint) Fail(endpoint, code string) {
	m.Errors.WithLabelValues(endpoint, code).Inc()
}
