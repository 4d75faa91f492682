package rooms

import (
	"context"
	"time"

	"github.com/rusoc/rusoc-go/internal/course"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/store"
)

// Service answers room queries over the enriched course data for a
// snapshot key. All derivations are recomputed per call from the
// current snapshot; rooms carry no state of their own.
type Service struct {
	courses *course.Service
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewService creates a room service on top of the course pipeline.
// metrics may be nil (tests).
func NewService(courses *course.Service, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		courses: courses,
		log:     log.WithModule("rooms"),
		metrics: m,
	}
}

// AllRooms lists every unique room for the key.
func (s *Service) AllRooms(ctx context.Context, key store.Key) ([]Room, error) {
	enriched, err := s.courses.GetCourses(ctx, key, "", course.FilterSet{})
	if err != nil {
		return nil, err
	}
	return AllRooms(enriched), nil
}

// Search ranks rooms against a free-text query for the key.
func (s *Service) Search(ctx context.Context, key store.Key, query string) ([]Room, error) {
	enriched, err := s.courses.GetCourses(ctx, key, "", course.FilterSet{})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	found := SearchRooms(query, enriched)
	if s.metrics != nil {
		s.metrics.RecordSearch("rooms", time.Since(start).Seconds(), len(found))
	}
	return found, nil
}

// Schedule builds the weekly schedule for one room under the key.
func (s *Service) Schedule(ctx context.Context, key store.Key, building, room string) (Schedule, error) {
	enriched, err := s.courses.GetCourses(ctx, key, "", course.FilterSet{})
	if err != nil {
		return Schedule{}, err
	}
	return RoomSchedule(building, room, enriched), nil
}

// Available finds rooms free during the queried window under the key.
func (s *Service) Available(ctx context.Context, key store.Key, q AvailabilityQuery) ([]Room, error) {
	enriched, err := s.courses.GetCourses(ctx, key, "", course.FilterSet{})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	found, err := FindAvailableRooms(q, enriched, s.log)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.RecordSearch("availability", time.Since(start).Seconds(), len(found))
	}
	return found, nil
}
