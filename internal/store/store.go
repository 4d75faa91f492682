// Package store caches course snapshots per (year, term, campus) key.
//
// Readers always see a complete snapshot: refreshes build the replacement
// aside and swap it in atomically under the write lock. A failed refresh
// never clobbers data that was previously served.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperr "github.com/rusoc/rusoc-go/internal/errors"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/soc"
)

// Key identifies one cached snapshot.
type Key struct {
	Year   string
	Term   string
	Campus string
}

// String returns the canonical cache key form, e.g. "2025_1_NB".
func (k Key) String() string {
	return k.Year + "_" + k.Term + "_" + k.Campus
}

// Snapshot is an immutable view of the course data for one key.
// Callers must not mutate Courses.
type Snapshot struct {
	Courses   []soc.Course
	FetchedAt time.Time
}

// Fetcher retrieves raw course data for one key.
type Fetcher interface {
	FetchCourses(ctx context.Context, year, term, campus string) ([]soc.Course, error)
}

// Store holds course snapshots and coordinates refreshes.
type Store struct {
	fetcher Fetcher
	log     *logger.Logger
	metrics *metrics.Metrics

	mu        sync.RWMutex
	snapshots map[Key]*Snapshot

	group singleflight.Group
}

// New creates an empty store. metrics may be nil (tests).
func New(fetcher Fetcher, log *logger.Logger, m *metrics.Metrics) *Store {
	return &Store{
		fetcher:   fetcher,
		log:       log.WithModule("store"),
		metrics:   m,
		snapshots: make(map[Key]*Snapshot),
	}
}

// Get returns the snapshot for key, fetching it on first access.
// Concurrent first accesses for the same key share a single fetch.
// When a refresh fails but an older snapshot exists, the stale snapshot
// is returned; an error is reported only if the key has never been
// fetched successfully.
func (s *Store) Get(ctx context.Context, key Key) (*Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[key]
	s.mu.RUnlock()

	if ok {
		if s.metrics != nil {
			s.metrics.CacheHitsTotal.WithLabelValues(key.String()).Inc()
		}
		return snap, nil
	}

	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues(key.String()).Inc()
	}

	_, err, _ := s.group.Do(key.String(), func() (any, error) {
		return nil, s.Refresh(ctx, key)
	})

	s.mu.RLock()
	snap, ok = s.snapshots[key]
	s.mu.RUnlock()

	if ok {
		return snap, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrNoSnapshot, key, err)
	}
	return nil, fmt.Errorf("%w: %s", apperr.ErrNoSnapshot, key)
}

// Refresh fetches fresh data for key and swaps it into the cache.
// On fetch failure the previous snapshot, if any, stays in place.
// An empty fetch result is published only when no snapshot exists yet;
// otherwise it is treated as an upstream glitch and discarded.
func (s *Store) Refresh(ctx context.Context, key Key) error {
	start := time.Now()

	courses, err := s.fetcher.FetchCourses(ctx, key.Year, key.Term, key.Campus)
	elapsed := time.Since(start)

	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordFetch(key.String(), "error", elapsed.Seconds(), key.Campus)
		}
		s.log.WithError(err).Error("refresh failed", "key", key.String())
		return fmt.Errorf("refresh %s: %w", key, err)
	}

	if s.metrics != nil {
		s.metrics.RecordFetch(key.String(), "success", elapsed.Seconds(), key.Campus)
	}

	sorted := make([]soc.Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CourseString < sorted[j].CourseString
	})

	snap := &Snapshot{Courses: sorted, FetchedAt: time.Now()}

	s.mu.Lock()
	prev, exists := s.snapshots[key]
	if len(sorted) == 0 && exists && len(prev.Courses) > 0 {
		s.mu.Unlock()
		s.log.Warn("empty fetch result, keeping previous snapshot",
			"key", key.String(), "previous_count", len(prev.Courses))
		return nil
	}
	s.snapshots[key] = snap
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SnapshotCourses.WithLabelValues(key.String()).Set(float64(len(sorted)))
	}
	s.log.Info("snapshot refreshed",
		"key", key.String(), "courses", len(sorted), "duration", elapsed.String())

	return nil
}

// Keys returns the keys with a cached snapshot, sorted.
func (s *Store) Keys() []Key {
	s.mu.RLock()
	keys := make([]Key, 0, len(s.snapshots))
	for k := range s.snapshots {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// LastUpdate reports when the snapshot for key was last refreshed.
func (s *Store) LastUpdate(key Key) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[key]
	if !ok {
		return time.Time{}, false
	}
	return snap.FetchedAt, true
}
