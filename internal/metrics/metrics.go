// Package metrics declares the Prometheus collectors of the hitchlog API.
// Collectors are registered on the default registry and exposed at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics, labelled by chi route pattern.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hitchlog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hitchlog_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// Country report metrics.
	ReportBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hitchlog_country_report_build_duration_seconds",
			Help:    "Time spent streaming all trips through the country aggregator",
			Buckets: prometheus.DefBuckets,
		},
	)

	ReportBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hitchlog_country_report_build_errors_total",
			Help: "Total number of failed country report builds",
		},
	)

	ReportTripsAggregated = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hitchlog_country_report_trips",
			Help: "Number of trips in the most recently built country report",
		},
	)

	ReportCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hitchlog_country_report_cache_hits_total",
			Help: "Total number of country report requests served from cache",
		},
	)

	ReportCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hitchlog_country_report_cache_misses_total",
			Help: "Total number of country report requests that had to build the report",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
