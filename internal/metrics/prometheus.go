package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for our service
type Metrics struct {
	// Request counters
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Pipeline metrics
	FetchesTotal     *prometheus.CounterVec
	FetchDuration    prometheus.Histogram
	RecordsSkipped   prometheus.Counter
	CampaignsListed  prometheus.Gauge
	ListingRunsTotal *prometheus.CounterVec

	// Health check metrics
	HealthCheckStatus *prometheus.GaugeVec
}

// NewPrometheusMetrics creates and registers all Prometheus metrics
func NewPrometheusMetrics() *Metrics {
	metrics := &Metrics{
		// HTTP request metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropslist_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dropslist_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dropslist_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Pipeline metrics
		FetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropslist_fetches_total",
				Help: "Total number of drops API fetches",
			},
			[]string{"outcome"},
		),

		FetchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "dropslist_fetch_duration_seconds",
				Help:    "Drops API fetch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		RecordsSkipped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "dropslist_records_skipped_total",
				Help: "Total number of raw records skipped during normalization",
			},
		),

		CampaignsListed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "dropslist_campaigns_listed",
				Help: "Number of campaigns in the most recent snapshot",
			},
		),

		ListingRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dropslist_listing_runs_total",
				Help: "Total number of listing pipeline runs",
			},
			[]string{"outcome"},
		),

		// Health check metrics
		HealthCheckStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dropslist_health_check_status",
				Help: "Health check status (1 = healthy, 0 = unhealthy)",
			},
			[]string{"check_type"},
		),
	}

	return metrics
}

// RecordHTTPRequest records an HTTP request with its duration and status
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordFetch records one drops API fetch with its duration
func (m *Metrics) RecordFetch(outcome string, duration float64) {
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(duration)
}

// RecordSkippedRecords counts raw records dropped by the normalizer
func (m *Metrics) RecordSkippedRecords(count int) {
	m.RecordsSkipped.Add(float64(count))
}

// RecordListingRun records one pipeline run and the snapshot size it produced
func (m *Metrics) RecordListingRun(outcome string, campaigns int) {
	m.ListingRunsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		m.CampaignsListed.Set(float64(campaigns))
	}
}

// SetHealthCheckStatus sets the health check status
func (m *Metrics) SetHealthCheckStatus(checkType string, healthy bool) {
	status := 0.0
	if healthy {
		status = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(checkType).Set(status)
}

// IncRequestsInFlight increments the in-flight requests counter
func (m *Metrics) IncRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// DecRequestsInFlight decrements the in-flight requests counter
func (m *Metrics) DecRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Dec()
}
