// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Upload metrics
	UploadsTotal   *prometheus.CounterVec
	UploadFailures *prometheus.CounterVec
	UploadDuration prometheus.Histogram

	// Minting metrics
	MintsTotal  prometheus.Counter
	MintsFailed prometheus.Counter

	// Creation workflow metrics
	CreationsTotal   *prometheus.CounterVec
	CreationDuration prometheus.Histogram

	// Store metrics
	TokensSaved     prometheus.Counter
	TokensDeduped   prometheus.Counter
	StoreErrors     *prometheus.CounterVec
	StoredTokensNow prometheus.Gauge

	// Wallet connection metrics
	ConnectionAttempts *prometheus.CounterVec
	ConnectionFailures *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "token_creator"
	}

	return &Metrics{
		// Upload metrics
		UploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "assets_total",
			Help:      "Total number of assets uploaded by origin",
		}, []string{"origin"}),
		UploadFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "failures_total",
			Help:      "Total number of upload failures by stage",
		}, []string{"stage"}),
		UploadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upload",
			Name:      "duration_seconds",
			Help:      "Asset upload duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		// Minting metrics
		MintsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "minting",
			Name:      "mints_total",
			Help:      "Total number of mint attempts",
		}),
		MintsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "minting",
			Name:      "mints_failed_total",
			Help:      "Total number of failed mint attempts",
		}),

		// Creation workflow metrics
		CreationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "creation",
			Name:      "runs_total",
			Help:      "Total number of token creation runs by outcome",
		}, []string{"outcome"}),
		CreationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "creation",
			Name:      "duration_seconds",
			Help:      "End-to-end token creation duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		}),

		// Store metrics
		TokensSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "tokens_saved_total",
			Help:      "Total number of token records saved",
		}),
		TokensDeduped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "tokens_deduplicated_total",
			Help:      "Total number of saves dropped as duplicates by mint address",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Total number of store errors by operation",
		}, []string{"operation"}),
		StoredTokensNow: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "tokens_current",
			Help:      "Current number of stored token records",
		}),

		// Wallet connection metrics
		ConnectionAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "connection_attempts_total",
			Help:      "Total number of connection strategy attempts by strategy",
		}, []string{"strategy"}),
		ConnectionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "connection_failures_total",
			Help:      "Total number of exhausted connection attempts by environment",
		}, []string{"environment"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordUpload records a completed upload with its resolved origin.
func (m *Metrics) RecordUpload(origin string, seconds float64) {
	if m == nil {
		return
	}
	m.UploadsTotal.WithLabelValues(origin).Inc()
	m.UploadDuration.Observe(seconds)
}

// RecordUploadFailure records a failed upload by stage.
func (m *Metrics) RecordUploadFailure(stage string) {
	if m == nil {
		return
	}
	m.UploadFailures.WithLabelValues(stage).Inc()
}

// RecordMint records a mint attempt and its outcome.
func (m *Metrics) RecordMint(err error) {
	if m == nil {
		return
	}
	m.MintsTotal.Inc()
	if err != nil {
		m.MintsFailed.Inc()
	}
}

// RecordCreation records a finished creation run.
func (m *Metrics) RecordCreation(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.CreationsTotal.WithLabelValues(outcome).Inc()
	m.CreationDuration.Observe(seconds)
}

// RecordSave records a token record save, distinguishing duplicates.
func (m *Metrics) RecordSave(deduped bool) {
	if m == nil {
		return
	}
	m.TokensSaved.Inc()
	if deduped {
		m.TokensDeduped.Inc()
	}
}

// RecordConnectionAttempt records one strategy attempt.
func (m *Metrics) RecordConnectionAttempt(strategy string) {
	if m == nil {
		return
	}
	m.ConnectionAttempts.WithLabelValues(strategy).Inc()
}

// RecordConnectionFailure records an exhausted connection by environment.
func (m *Metrics) RecordConnectionFailure(environment string) {
	if m == nil {
		return
	}
	m.ConnectionFailures.WithLabelValues(environment).Inc()
}
