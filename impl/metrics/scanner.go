package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// These are the metrics functions exposed by the package. By default they are
// all NOP functions to minimize overhead when metrics are not enabled. The
// 'addScannerMetrics' function initializes these with functions having
// implementations if metrics are enabled.

var IncScans noLabel = func() {}
var IncScanErrors noLabel = func() {}
var AddModelsListed counted = func(float64) {}
var ObserveScanDuration counted = func(float64) {}

type noLabel func()
type counted func(float64)

const (
	scans_total         = "scans_total"
	scan_errors_total   = "scan_errors_total"
	models_listed_total = "models_listed_total"
	scan_duration_secs  = "scan_duration_seconds"
	namespace           = "ollamafilefind"
)

// Prometheus metrics objects

var scansTotal prometheus.Counter
var scanErrorsTotal prometheus.Counter
var modelsListedTotal prometheus.Counter
var scanDurationSeconds prometheus.Histogram

// addScannerMetrics creates all the scanner metrics and registers them with
// the prometheus library. It also assigns a function to actually implement the
// metric. Unless this function is called, all the metric functions exposed by
// the package will be NOP functions.
func addScannerMetrics() {
	scansTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name:      scans_total,
			Namespace: namespace,
			Help:      "Total count of inventory scans performed by the server",
		},
	)
	IncScans = func() {
		scansTotal.Add(1)
	}

	///
	scanErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name:      scan_errors_total,
			Namespace: namespace,
			Help:      "Total count of scans that failed outright (unreadable manifests root)",
		},
	)
	IncScanErrors = func() {
		scanErrorsTotal.Add(1)
	}

	///
	modelsListedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name:      models_listed_total,
			Namespace: namespace,
			Help:      "Total count of models returned across all scans",
		},
	)
	AddModelsListed = func(count float64) {
		modelsListedTotal.Add(count)
	}

	///
	scanDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:      scan_duration_secs,
			Namespace: namespace,
			Help:      "Scan duration in seconds",
		},
	)
	ObserveScanDuration = func(seconds float64) {
		scanDurationSeconds.Observe(seconds)
	}
}
