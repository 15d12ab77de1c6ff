package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// promauto registers everything with the default registry; the handler
// package exposes it on /metrics.
var (
	// ScansTotal counts successfully resolved redirect scans.
	ScansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrtrack_scans_total",
			Help: "Total number of recorded QR code scans",
		},
	)

	// ScanRecordingFailures counts best-effort telemetry writes that failed
	// after the redirect was already guaranteed. Label "stage" is either
	// "counter" or "event"; a nonzero rate means counter and event log are
	// diverging and need reconciliation.
	ScanRecordingFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrtrack_scan_recording_failures_total",
			Help: "Scan counter/event writes that failed on the redirect path",
		},
		[]string{"stage"},
	)

	// RedirectsTotal counts redirect responses by outcome.
	RedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrtrack_redirects_total",
			Help: "Total number of redirect requests by outcome",
		},
		[]string{"outcome"}, // "redirected", "not_found", "error"
	)

	// HTTPRequestDuration tracks handler latency for percentile queries.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qrtrack_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)
)
