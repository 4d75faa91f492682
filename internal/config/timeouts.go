package config

import "time"

// Operation timeouts and job scheduling constants.
// Grouped here so the relationships between them stay visible: every
// job timeout must exceed the upstream timeout it wraps, including retries.
const (
	// UpstreamRequest is the per-request timeout against the course API.
	// The full-term course payload runs to several megabytes.
	UpstreamRequest = 30 * time.Second

	// RefreshJob bounds one background refresh of a single snapshot key,
	// covering the request timeout plus bounded retries with backoff.
	RefreshJob = 3 * time.Minute

	// RefreshInitialDelay lets the server finish startup before the
	// first background refresh pass runs.
	RefreshInitialDelay = 10 * time.Second

	// MetricsUpdateInterval is how often cache size gauges are recomputed.
	MetricsUpdateInterval = 1 * time.Minute

	// ReadHeaderTimeout guards against slowloris on the HTTP listener.
	ReadHeaderTimeout = 10 * time.Second

	// RateLimiterCleanupPeriod is how often idle per-client buckets are dropped.
	RateLimiterCleanupPeriod = 5 * time.Minute
)
