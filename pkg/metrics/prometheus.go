package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	forecasts  *prometheus.CounterVec
	risks      *prometheus.CounterVec
	anomalies  prometheus.Counter
	quotes     *prometheus.CounterVec
	rejections *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New creates a recorder registered on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		forecasts: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_forecasts_total",
				Help: "Total number of price forecasts by method",
			},
			[]string{"method"},
		),
		risks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_risk_assessments_total",
				Help: "Total number of risk assessments by tier",
			},
			[]string{"tier"},
		),
		anomalies: f.NewCounter(
			prometheus.CounterOpts{
				Name: "mcp_volume_anomalies_total",
				Help: "Total number of volume anomalies flagged",
			},
		),
		quotes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_quotes_total",
				Help: "Total number of market-making quotes",
			},
			[]string{"capped"},
		),
		rejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mcp_rejections_total",
				Help: "Total number of rejected analytics requests",
			},
			[]string{"operation", "kind"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mcp_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordForecast(method string) {
	r.forecasts.WithLabelValues(method).Inc()
}

func (r *Recorder) RecordRisk(tier string, anomalies int) {
	r.risks.WithLabelValues(tier).Inc()
	r.anomalies.Add(float64(anomalies))
}

func (r *Recorder) RecordQuote(capped bool) {
	r.quotes.WithLabelValues(strconv.FormatBool(capped)).Inc()
}

// RecordRejection records a request rejected by the analytics core.
func (r *Recorder) RecordRejection(operation, kind string) {
	r.rejections.WithLabelValues(operation, kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
