package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/rusoc/rusoc-go/internal/ctxutil"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(securityHeadersMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "default-src 'self'", w.Header().Get("Content-Security-Policy"))
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(requestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetRequestID(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	echoed := w.Header().Get("X-Request-ID")
	assert.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen)

	// Generated IDs are UUIDs
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestIDMiddleware_HonorsIncomingID(t *testing.T) {
	var seen string
	router := gin.New()
	router.Use(requestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetRequestID(c.Request.Context())
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-trace-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "upstream-trace-42", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "upstream-trace-42", seen)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     2,
		RefillRate:    0.001, // effectively no refill during the test
		CleanupPeriod: time.Minute,
	})
	defer limiter.Stop()

	m := metrics.New(prometheus.NewRegistry())

	router := gin.New()
	router.Use(rateLimitMiddleware(limiter, m))
	router.GET("/api/courses", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
		req.RemoteAddr = "198.51.100.7:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestLoggingMiddleware_DoesNotAlterResponse(t *testing.T) {
	log := logger.NewWithWriter("debug", io.Discard)

	router := gin.New()
	router.Use(requestIDMiddleware(), loggingMiddleware(log))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
