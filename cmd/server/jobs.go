// Package main provides the course search API server entry point.
package main

import (
	"context"
	"time"

	"github.com/rusoc/rusoc-go/internal/config"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/store"
)

// refreshSnapshots periodically re-fetches every known snapshot key.
// The default key is refreshed on startup so the first request doesn't
// pay the fetch cost; keys discovered later via on-demand fetches join
// the periodic cycle automatically.
func refreshSnapshots(ctx context.Context, courseStore *store.Store, defaultKey store.Key, interval time.Duration, m *metrics.Metrics, log *logger.Logger) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(config.RefreshInitialDelay):
		runRefresh(ctx, courseStore, defaultKey, m, log)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keys := courseStore.Keys()
			if len(keys) == 0 {
				keys = []store.Key{defaultKey}
			}
			for _, key := range keys {
				runRefresh(ctx, courseStore, key, m, log)
			}
		}
	}
}

// runRefresh refreshes one key with a bounded job timeout.
func runRefresh(ctx context.Context, courseStore *store.Store, key store.Key, m *metrics.Metrics, log *logger.Logger) {
	jobCtx, cancel := context.WithTimeout(ctx, config.RefreshJob)
	defer cancel()

	start := time.Now()
	if err := courseStore.Refresh(jobCtx, key); err != nil {
		// Stale snapshot stays in place; next cycle retries
		log.WithError(err).Warn("Snapshot refresh failed", "key", key.String())
	}
	m.RecordJob("refresh", time.Since(start).Seconds())
}

// updateSnapshotMetrics keeps the per-key course count gauges current.
func updateSnapshotMetrics(ctx context.Context, courseStore *store.Store, m *metrics.Metrics, log *logger.Logger) {
	ticker := time.NewTicker(config.MetricsUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, key := range courseStore.Keys() {
				snap, err := courseStore.Get(ctx, key)
				if err != nil {
					log.WithError(err).Debug("Skipping metrics for key", "key", key.String())
					continue
				}
				m.SnapshotCourses.WithLabelValues(key.String()).Set(float64(len(snap.Courses)))
			}
		}
	}
}
