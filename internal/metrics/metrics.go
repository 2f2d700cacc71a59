// Package metrics holds the Prometheus instrumentation for the scan and
// alert paths.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus collectors.
type Metrics struct {
	ScansTotal       prometheus.Counter
	ScanDuration     prometheus.Histogram
	AssetsScanned    prometheus.Counter
	AlertsEmitted    *prometheus.CounterVec // label: call
	AlertsSuppressed prometheus.Counter
	FetchErrors      *prometheus.CounterVec // label: source
	StoreErrors      prometheus.Counter
	NotifyErrors     prometheus.Counter
}

// New registers and returns all collectors on a fresh registry.
func New() (*Metrics, *prometheus.Registry) {
	m := &Metrics{
		ScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptonote_scans_total",
			Help: "Completed scan ticks",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cryptonote_scan_duration_seconds",
			Help:    "Wall time of one full scan tick",
			Buckets: prometheus.DefBuckets,
		}),
		AssetsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptonote_assets_scanned_total",
			Help: "Per-asset evaluations across all scans",
		}),
		AlertsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptonote_alerts_emitted_total",
			Help: "Alerts that passed the cooldown gate",
		}, []string{"call"}),
		AlertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptonote_alerts_suppressed_total",
			Help: "Calls suppressed by the cooldown gate",
		}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cryptonote_fetch_errors_total",
			Help: "Upstream market-data fetch failures",
		}, []string{"source"}),
		StoreErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptonote_store_errors_total",
			Help: "Alert state store failures",
		}),
		NotifyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cryptonote_notify_errors_total",
			Help: "Alert deliveries that exhausted their retries",
		}),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		m.ScansTotal, m.ScanDuration, m.AssetsScanned,
		m.AlertsEmitted, m.AlertsSuppressed, m.FetchErrors, m.StoreErrors, m.NotifyErrors,
	)
	return m, reg
}
