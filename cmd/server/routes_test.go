package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusoc/rusoc-go/internal/config"
	"github.com/rusoc/rusoc-go/internal/course"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/rooms"
	"github.com/rusoc/rusoc-go/internal/salary"
	"github.com/rusoc/rusoc-go/internal/soc"
	"github.com/rusoc/rusoc-go/internal/storage"
	"github.com/rusoc/rusoc-go/internal/store"
)

type routeFetcher struct {
	courses []soc.Course
}

func (f *routeFetcher) FetchCourses(_ context.Context, _, _, _ string) ([]soc.Course, error) {
	return f.courses, nil
}

// newTestRouter wires the full route table against in-memory backends.
func newTestRouter(t *testing.T, cfg *config.Config, courses []soc.Course) (*gin.Engine, *storage.DB) {
	t.Helper()

	log := logger.NewWithWriter("error", io.Discard)
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	db, err := storage.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	courseStore := store.New(&routeFetcher{courses: courses}, log, m)
	courseService := course.NewService(courseStore, log, m)
	roomService := rooms.NewService(courseService, log, m)
	salaryService := salary.NewService(db, log, m)

	router := gin.New()
	setupRoutes(router, cfg, courseService, roomService, salaryService, courseStore, db, registry)
	return router, db
}

func testConfig() *config.Config {
	return &config.Config{
		DefaultYear:     "2025",
		DefaultTerm:     "1",
		DefaultCampus:   "NB",
		MetricsUsername: "prometheus",
	}
}

func sampleCourses() []soc.Course {
	return []soc.Course{
		{
			CourseString:       "01:198:111",
			Subject:            "198",
			SubjectDescription: "Computer Science",
			CourseNumber:       "111",
			Title:              "INTRO COMPUTER SCI",
			Sections: []soc.Section{
				{
					Number:         "01",
					Index:          "12345",
					OpenStatusText: "OPEN",
					Instructors:    []soc.Instructor{{Name: "SMITH, JOHN"}},
					MeetingTimes: []soc.Meeting{
						{
							MeetingDay:        "M",
							StartTimeMilitary: "1030",
							EndTimeMilitary:   "1150",
							BuildingCode:      "HLL",
							RoomNumber:        "114",
							CampusLocation:    "2",
						},
					},
				},
			},
		},
		{
			CourseString:       "01:640:151",
			Subject:            "640",
			SubjectDescription: "Mathematics",
			CourseNumber:       "151",
			Title:              "CALCULUS I",
		},
	}
}

func TestCoursesEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(), sampleCourses())

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Data   []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 2)
}

func TestCoursesEndpoint_SearchAndFilter(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(), sampleCourses())

	req := httptest.NewRequest(http.MethodGet, "/api/courses?search=calculus&subject=640", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			CourseString string `json:"courseString"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "01:640:151", body.Data[0].CourseString)
}

func TestRoomsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(), sampleCourses())

	t.Run("list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []struct {
				Building string `json:"building"`
				Room     string `json:"room"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "HLL", body.Data[0].Building)
		assert.Equal(t, "114", body.Data[0].Room)
	})

	t.Run("schedule requires building and room", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/rooms/schedule?building=HLL", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("available rejects bad window", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/rooms/available?day=monday&start_time=25:00&end_time=10:00", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("available finds free room", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/rooms/available?day=monday&start_time=8:00+AM&end_time=9:00+AM", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data []struct {
				Building string `json:"building"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "HLL", body.Data[0].Building)
	})
}

func TestSalaryEndpoint(t *testing.T) {
	router, db := newTestRouter(t, testConfig(), nil)

	err := db.ReplaceSalaries(context.Background(), []storage.SalaryRecord{
		{Name: "John Smith", Title: "Professor", BasePay: "125000"},
	})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/salary?name=John+Smith", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data struct {
				Name string `json:"Name"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "John Smith", body.Data.Name)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/salary?name=Nobody+Here", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/salary", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testConfig(), sampleCourses())

	for _, path := range []string{"/healthz", "/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestMetricsEndpoint_BasicAuth(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsPassword = "secret123"
	router, _ := newTestRouter(t, cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization",
		"Basic "+base64.StdEncoding.EncodeToString([]byte("prometheus:secret123")))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMultiValue(t *testing.T) {
	router := gin.New()
	var got []string
	router.GET("/", func(c *gin.Context) {
		got = multiValue(c, "days")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/?days=monday,tuesday&days=+friday+", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, []string{"monday", "tuesday", "friday"}, got)
}
