package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Upstream fetch metrics
	FetchRequestsTotal   *prometheus.CounterVec
	FetchDurationSeconds *prometheus.HistogramVec

	// Snapshot cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	SnapshotCourses  *prometheus.GaugeVec

	// Search metrics
	SearchDurationSeconds *prometheus.HistogramVec
	SearchResultsTotal    *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Background job metrics
	JobDurationSeconds *prometheus.HistogramVec

	// Salary data metrics
	SalaryRecords prometheus.Gauge
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		FetchRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rusoc_fetch_requests_total",
				Help: "Total number of upstream course API fetches by key and status",
			},
			[]string{"key", "status"}, // status: success, error, timeout
		),

		FetchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rusoc_fetch_duration_seconds",
				Help:    "Upstream fetch duration in seconds by campus",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60}, // Matches 30s timeout + backoff
			},
			[]string{"campus"},
		),

		CacheHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rusoc_cache_hits_total",
				Help: "Total number of snapshot cache hits by key",
			},
			[]string{"key"},
		),

		CacheMissesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rusoc_cache_misses_total",
				Help: "Total number of snapshot cache misses by key",
			},
			[]string{"key"},
		),

		SnapshotCourses: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rusoc_snapshot_courses",
				Help: "Number of raw course records in the current snapshot by key",
			},
			[]string{"key"},
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rusoc_search_duration_seconds",
				Help:    "Search and filter pipeline duration in seconds by kind",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"kind"}, // kind: courses, rooms, availability
		),

		SearchResultsTotal: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rusoc_search_results",
				Help:    "Result set sizes by kind",
				Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"kind"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rusoc_http_errors_total",
				Help: "Total HTTP errors by status class and route",
			},
			[]string{"status", "route"},
		),

		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "rusoc_ratelimit_dropped_total",
				Help: "Total requests rejected by the per-client rate limiter",
			},
			[]string{"route"},
		),

		JobDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rusoc_job_duration_seconds",
				Help:    "Background job duration in seconds by job name",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 180},
			},
			[]string{"job"},
		),

		SalaryRecords: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "rusoc_salary_records",
				Help: "Number of salary records loaded into the lookup table",
			},
		),
	}

	return m
}

// RecordFetch records one upstream fetch outcome.
func (m *Metrics) RecordFetch(key, status string, seconds float64, campus string) {
	m.FetchRequestsTotal.WithLabelValues(key, status).Inc()
	m.FetchDurationSeconds.WithLabelValues(campus).Observe(seconds)
}

// RecordSearch records a search pipeline run.
func (m *Metrics) RecordSearch(kind string, seconds float64, results int) {
	m.SearchDurationSeconds.WithLabelValues(kind).Observe(seconds)
	m.SearchResultsTotal.WithLabelValues(kind).Observe(float64(results))
}

// RecordJob records one background job run.
func (m *Metrics) RecordJob(job string, seconds float64) {
	m.JobDurationSeconds.WithLabelValues(job).Observe(seconds)
}
