// Package main provides the course search API server entry point.
package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rusoc/rusoc-go/internal/config"
	"github.com/rusoc/rusoc-go/internal/course"
	apperr "github.com/rusoc/rusoc-go/internal/errors"
	"github.com/rusoc/rusoc-go/internal/rooms"
	"github.com/rusoc/rusoc-go/internal/salary"
	"github.com/rusoc/rusoc-go/internal/storage"
	"github.com/rusoc/rusoc-go/internal/store"
)

// setupRoutes configures all HTTP routes
func setupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	courseService *course.Service,
	roomService *rooms.Service,
	salaryService *salary.Service,
	courseStore *store.Store,
	db *storage.DB,
	registry *prometheus.Registry,
) {
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "rusoc",
			"endpoints": []string{
				"/api/courses",
				"/api/rooms",
				"/api/rooms/search",
				"/api/rooms/schedule",
				"/api/rooms/available",
				"/api/salary",
			},
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - process is up, nothing else
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe - dependency check
	readyHandler := func(c *gin.Context) {
		salaryCount, err := db.CountSalaries(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		snapshots := gin.H{}
		for _, key := range courseStore.Keys() {
			if ts, ok := courseStore.LastUpdate(key); ok {
				snapshots[key.String()] = ts
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"database":  "connected",
			"salaries":  salaryCount,
			"snapshots": snapshots,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	api := router.Group("/api")

	api.GET("/courses", func(c *gin.Context) {
		key := snapshotKey(c, cfg)
		filters := course.FilterSet{
			Subject:    c.Query("subject"),
			School:     c.Query("school"),
			CoreCode:   c.Query("core_code"),
			Status:     multiValue(c, "status"),
			CourseType: multiValue(c, "course_type"),
			Days:       multiValue(c, "days"),
			TimeRange:  multiValue(c, "time_range"),
			Campus:     multiValue(c, "campus_filter"),
		}

		courses, err := courseService.GetCourses(c.Request.Context(), key, c.Query("search"), filters)
		if err != nil {
			respondError(c, key, err)
			return
		}
		respondData(c, courseStore, key, courses)
	})

	api.GET("/rooms", func(c *gin.Context) {
		key := snapshotKey(c, cfg)
		list, err := roomService.AllRooms(c.Request.Context(), key)
		if err != nil {
			respondError(c, key, err)
			return
		}
		respondData(c, courseStore, key, list)
	})

	api.GET("/rooms/search", func(c *gin.Context) {
		key := snapshotKey(c, cfg)
		list, err := roomService.Search(c.Request.Context(), key, c.Query("q"))
		if err != nil {
			respondError(c, key, err)
			return
		}
		respondData(c, courseStore, key, list)
	})

	api.GET("/rooms/schedule", func(c *gin.Context) {
		building := strings.TrimSpace(c.Query("building"))
		room := strings.TrimSpace(c.Query("room"))
		if building == "" || room == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "building and room must be specified",
			})
			return
		}

		key := snapshotKey(c, cfg)
		sched, err := roomService.Schedule(c.Request.Context(), key, building, room)
		if err != nil {
			respondError(c, key, err)
			return
		}
		respondData(c, courseStore, key, sched)
	})

	api.GET("/rooms/available", func(c *gin.Context) {
		key := snapshotKey(c, cfg)
		list, err := roomService.Available(c.Request.Context(), key, rooms.AvailabilityQuery{
			Day:       c.Query("day"),
			StartTime: c.Query("start_time"),
			EndTime:   c.Query("end_time"),
			Campus:    c.Query("campus_filter"),
			Search:    c.Query("q"),
		})
		if err != nil {
			respondError(c, key, err)
			return
		}
		respondData(c, courseStore, key, list)
	})

	api.GET("/salary", func(c *gin.Context) {
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "missing instructor name",
			})
			return
		}

		record, err := salaryService.GetByInstructor(c.Request.Context(), name)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{
					"status":  "error",
					"message": "no salary record found",
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "salary lookup failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "data": record})
	})

	// Prometheus metrics endpoint, optionally behind basic auth
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

// snapshotKey reads the (year, term, campus) triple from query
// parameters, defaulting to the configured academic period.
func snapshotKey(c *gin.Context, cfg *config.Config) store.Key {
	return store.Key{
		Year:   c.DefaultQuery("year", cfg.DefaultYear),
		Term:   c.DefaultQuery("term", cfg.DefaultTerm),
		Campus: c.DefaultQuery("campus", cfg.DefaultCampus),
	}
}

// multiValue reads a multi-valued filter parameter; both repeated
// parameters and comma-separated lists are accepted.
func multiValue(c *gin.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryArray(name) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func respondData(c *gin.Context, courseStore *store.Store, key store.Key, data any) {
	body := gin.H{"status": "success", "data": data}
	if ts, ok := courseStore.LastUpdate(key); ok {
		body["last_update"] = ts
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, key store.Key, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": apperr.GetUserMessage(err),
		})
	case errors.Is(err, apperr.ErrNoSnapshot):
		// Upstream has never answered for this key; the result set is
		// empty but the failure must be visible to the caller
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "course data unavailable for " + key.String(),
			"data":    []any{},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal error",
		})
	}
}
