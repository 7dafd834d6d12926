package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchDuration  *prometheus.HistogramVec
	fetchErrors    *prometheus.CounterVec
	cacheHits      *prometheus.CounterVec
	snapshotAge    prometheus.Gauge
	snapshotRows   prometheus.Gauge
	refreshesTotal *prometheus.CounterVec
	lastIndicator  *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macrodash_fetch_duration_seconds",
				Help:    "Duration of upstream fetches per source",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrodash_fetch_errors_total",
				Help: "Total number of upstream fetch errors per source",
			},
			[]string{"source"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrodash_snapshot_cache_total",
				Help: "Snapshot cache lookups by result (hit, miss, stale)",
			},
			[]string{"result"},
		),
		snapshotAge: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "macrodash_snapshot_age_seconds",
				Help: "Age of the current data snapshot",
			},
		),
		snapshotRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "macrodash_snapshot_rows",
				Help: "Row count of the current data snapshot",
			},
		),
		refreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macrodash_refreshes_total",
				Help: "Snapshot refresh attempts by outcome (ok, error)",
			},
			[]string{"outcome"},
		),
		lastIndicator: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "macrodash_indicator_value",
				Help: "Most recent value of a derived indicator",
			},
			[]string{"indicator"},
		),
	}
}

// RecordFetch records one upstream fetch duration.
func (r *Recorder) RecordFetch(source string, seconds float64) {
	r.fetchDuration.WithLabelValues(source).Observe(seconds)
}

// RecordFetchError records an upstream fetch failure.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// RecordCacheLookup records a snapshot cache lookup result.
func (r *Recorder) RecordCacheLookup(result string) {
	r.cacheHits.WithLabelValues(result).Inc()
}

// RecordSnapshot records meta of a freshly built snapshot.
func (r *Recorder) RecordSnapshot(ageSeconds float64, rows int) {
	r.snapshotAge.Set(ageSeconds)
	r.snapshotRows.Set(float64(rows))
}

// RecordRefresh records a refresh attempt outcome.
func (r *Recorder) RecordRefresh(outcome string) {
	r.refreshesTotal.WithLabelValues(outcome).Inc()
}

// RecordIndicator records the current value of a derived indicator.
func (r *Recorder) RecordIndicator(name string, value float64) {
	r.lastIndicator.WithLabelValues(name).Set(value)
}
