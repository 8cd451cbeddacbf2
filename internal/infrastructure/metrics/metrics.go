package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Catalog API metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Upstream sync runs
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "sync_runs_total",
			Help:      "Model catalog sync attempts by outcome",
		},
		[]string{"status"},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "sync_duration_seconds",
			Help:      "Model catalog sync duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// Catalog size gauge
	FreeModelsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "free_models_active",
			Help:      "Number of active free models in the catalog",
		},
	)

	// Catalog staleness gauge, updated on every read
	CatalogAgeSeconds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "catalog_age_seconds",
			Help:      "Seconds since the last successful catalog sync",
		},
	)

	// Feedback counters
	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "feedback_total",
			Help:      "Feedback submissions by kind",
		},
		[]string{"kind"},
	)

	// Upstream call failures
	UpstreamErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "upstream_errors_total",
			Help:      "Upstream API call failures",
		},
		[]string{"upstream", "error_type"},
	)

	// Demo probe counters
	DemoProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "demo_probes_total",
			Help:      "Demo completion probes by outcome",
		},
		[]string{"status"},
	)

	// Rate limiter rejections
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Cleanup counters
	CleanupRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "cleanup_rows_total",
			Help:      "Rows removed by retention cleanup",
		},
		[]string{"table"},
	)

	// User agent metrics (normalized to keep low cardinality)
	UserAgentFamilyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "freemodels",
			Subsystem: "catalog_api",
			Name:      "user_agent_family_total",
			Help:      "Requests by user agent family (browser/cli/sdk/unknown)",
		},
		[]string{"family"},
	)
)

// RecordRequest records an HTTP request with its duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordSync records one catalog sync attempt
func RecordSync(status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	SyncRunsTotal.WithLabelValues(status).Inc()
	SyncDuration.Observe(durationSec)
}

// SetFreeModels sets the active free model count gauge
func SetFreeModels(n int) {
	FreeModelsActive.Set(float64(n))
}

// SetCatalogAge sets the catalog staleness gauge
func SetCatalogAge(ageSec float64) {
	CatalogAgeSeconds.Set(ageSec)
}

// RecordFeedback records a feedback submission; kind is "success" or the
// issue name
func RecordFeedback(success bool, issue string) {
	kind := issue
	if success {
		kind = "success"
	}
	if kind == "" {
		kind = "unknown"
	}
	FeedbackTotal.WithLabelValues(kind).Inc()
}

// RecordUpstreamError records an upstream call failure
func RecordUpstreamError(upstream, errorType string) {
	UpstreamErrorsTotal.WithLabelValues(upstream, errorType).Inc()
}

// RecordDemoProbe records a demo completion probe outcome
func RecordDemoProbe(status string) {
	if status == "" {
		status = "unknown"
	}
	DemoProbesTotal.WithLabelValues(status).Inc()
}

// RecordRateLimited records a rate limiter rejection
func RecordRateLimited(endpoint string) {
	RateLimitedTotal.WithLabelValues(endpoint).Inc()
}

// RecordCleanup records rows removed by retention cleanup
func RecordCleanup(table string, rows int64) {
	if rows <= 0 {
		return
	}
	CleanupRowsTotal.WithLabelValues(table).Add(float64(rows))
}

// RecordUserAgent records a coarse UA family bucket
func RecordUserAgent(ua string) {
	UserAgentFamilyTotal.WithLabelValues(userAgentFamily(ua)).Inc()
}

func userAgentFamily(ua string) string {
	ua = strings.ToLower(strings.TrimSpace(ua))
	switch {
	case ua == "":
		return "unknown"
	case strings.Contains(ua, "mozilla") || strings.Contains(ua, "chrome") || strings.Contains(ua, "safari") || strings.Contains(ua, "firefox") || strings.Contains(ua, "edge"):
		return "browser"
	case strings.Contains(ua, "curl") || strings.Contains(ua, "wget") || strings.Contains(ua, "httpie"):
		return "cli"
	case strings.Contains(ua, "axios") || strings.Contains(ua, "fetch") || strings.Contains(ua, "python-requests") || strings.Contains(ua, "go-http-client") || strings.Contains(ua, "okhttp"):
		return "sdk"
	default:
		return "unknown"
	}
}

// Handler exposes the default registry for the standalone metrics listener.
func Handler() http.Handler {
	return promhttp.Handler()
}
