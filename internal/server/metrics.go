package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "taxgo"

// Metrics holds the Prometheus collectors of the HTTP API. Each server registers
// them on its own registry.
type Metrics struct {
	// RequestsTotal counts requests by route and status code
	RequestsTotal *prometheus.CounterVec
	// RequestDurationSeconds measures handler latency by route
	RequestDurationSeconds *prometheus.HistogramVec
	// CalculationsTotal counts regime runs by regime
	CalculationsTotal *prometheus.CounterVec
	// RecommendationsTotal counts comparison outcomes by recommended regime
	RecommendationsTotal *prometheus.CounterVec
	// HardBlocksTotal counts results that carried at least one hard block
	HardBlocksTotal prometheus.Counter
}

// NewMetrics creates and registers the API metrics on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by route and status",
		}, []string{"route", "status"}),
		RequestDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		CalculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "calculations_total",
			Help:      "Total regime calculations by regime",
		}, []string{"regime"}),
		RecommendationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "recommendations_total",
			Help:      "Total comparisons by recommended regime",
		}, []string{"regime"}),
		HardBlocksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "hard_blocked_results_total",
			Help:      "Total results returned with at least one hard block",
		}),
	}
}
