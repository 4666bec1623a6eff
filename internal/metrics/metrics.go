package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the prediction service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Airport resolution
	AirportResolutionsTotal *prometheus.CounterVec

	// External calls
	ExternalCallDuration *prometheus.HistogramVec
	ExternalCallErrors   *prometheus.CounterVec

	// Business Metrics
	PredictionsTotal    *prometheus.CounterVec
	PredictionDedupHits prometheus.Counter
	PredictionDuration  prometheus.Histogram

	// Store sizes, refreshed by the store monitor
	StoredRows *prometheus.GaugeVec
}

// NewMetricsRegistry registers every metric with reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightontime_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightontime_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightontime_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		AirportResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightontime_airport_resolutions_total",
				Help: "Airport resolutions by source (cache, local, remote, not_found, error)",
			},
			[]string{"source"},
		),

		ExternalCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flightontime_external_call_duration_seconds",
				Help:    "Latency of calls to remote collaborators in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"provider"},
		),
		ExternalCallErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightontime_external_call_errors_total",
				Help: "Failed calls to remote collaborators by provider",
			},
			[]string{"provider"},
		),

		// Business Metrics
		PredictionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flightontime_predictions_total",
				Help: "Predictions returned by verdict and origin (model or stored)",
			},
			[]string{"verdict", "origin"},
		),
		PredictionDedupHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "flightontime_prediction_dedup_hits_total",
				Help: "Predictions answered from stored history without calling the model",
			},
		),
		PredictionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "flightontime_prediction_duration_seconds",
				Help:    "End-to-end prediction orchestration time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),

		StoredRows: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "flightontime_stored_rows",
				Help: "Rows currently stored per table",
			},
			[]string{"table"},
		),
	}
}
