// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ukydev/garage/internal/apperror"
)

var (
	// API metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "garage_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Report metrics
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "garage_reports_generated_total",
			Help: "Total number of reports generated, by outcome",
		},
		[]string{"report", "outcome"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "garage_report_duration_seconds",
			Help:    "Time spent generating a report",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests
func TrackActiveRequest(inc bool) {
	if inc {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

// RecordReport records one report generation. Bad filters count as
// "rejected" so they stay out of the error rate.
func RecordReport(report string, duration time.Duration, err error) {
	outcome := "success"
	switch {
	case apperror.Is(err, apperror.KindValidation):
		outcome = "rejected"
	case err != nil:
		outcome = "error"
	}
	ReportsGenerated.WithLabelValues(report, outcome).Inc()
	ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
}
