package course

import (
	"context"
	"time"

	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/store"
)

// Service runs the filter, search and enrichment pipeline over cached
// course snapshots. All methods are safe for concurrent use; the
// pipeline stages are pure functions over an immutable snapshot.
type Service struct {
	store   *store.Store
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewService creates a course service. metrics may be nil (tests).
func NewService(st *store.Store, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   st,
		log:     log.WithModule("course"),
		metrics: m,
	}
}

// GetCourses returns the enriched courses for key, narrowed by filters
// and ranked by search when one is given. A missing snapshot that cannot
// be fetched yields an error alongside the empty result; no-match
// conditions are empty successes.
func (s *Service) GetCourses(ctx context.Context, key store.Key, search string, filters FilterSet) ([]EnrichedCourse, error) {
	snap, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	courses := snap.Courses
	if !filters.IsZero() {
		before := len(courses)
		courses = ApplyFilters(courses, filters)
		s.log.Debug("filters applied", "key", key.String(), "before", before, "after", len(courses))
	}

	if search != "" {
		courses = Search(courses, search, DefaultThreshold)
	}

	enriched := EnrichAll(courses)

	if s.metrics != nil {
		s.metrics.RecordSearch("courses", time.Since(start).Seconds(), len(enriched))
	}
	s.log.Info("courses served",
		"key", key.String(), "search", search, "count", len(enriched))

	return enriched, nil
}
