// Package main provides the course search API server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rusoc/rusoc-go/internal/config"
	"github.com/rusoc/rusoc-go/internal/course"
	"github.com/rusoc/rusoc-go/internal/logger"
	"github.com/rusoc/rusoc-go/internal/metrics"
	"github.com/rusoc/rusoc-go/internal/ratelimit"
	"github.com/rusoc/rusoc-go/internal/rooms"
	"github.com/rusoc/rusoc-go/internal/salary"
	"github.com/rusoc/rusoc-go/internal/soc"
	"github.com/rusoc/rusoc-go/internal/storage"
	"github.com/rusoc/rusoc-go/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting course search server")

	// Initialize Sentry (optional)
	sentryEnabled := false
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.1,
		}); err != nil {
			log.WithError(err).Warn("Failed to initialize Sentry, crash reporting disabled")
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
			log.Info("Sentry crash reporting enabled")
		}
	}

	// Connect to the salary database
	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	m := metrics.New(registry)
	log.Info("Metrics initialized")

	// Load salary records
	salaryService := salary.NewService(db, log, m)
	if count, err := salaryService.LoadFromFiles(context.Background(), cfg.SalaryCSVPath, cfg.SalaryJSON); err != nil {
		log.WithError(err).Warn("Failed to load salary data, salary lookups disabled")
	} else {
		log.WithField("count", count).Info("Salary data ready")
	}

	// Create the upstream client and snapshot store
	socClient := soc.NewClient(cfg.SOCBaseURL, cfg.SOCTimeout, cfg.SOCMaxRetries, log)
	courseStore := store.New(socClient, log, m)
	courseService := course.NewService(courseStore, log, m)
	roomService := rooms.NewService(courseService, log, m)
	log.Info("Course pipeline created")

	// Per-client rate limiter
	limiter := ratelimit.NewPerKeyLimiter(ratelimit.PerKeyLimiterConfig{
		MaxTokens:     cfg.RateLimitPerMinute,
		RefillRate:    cfg.RateLimitPerMinute / 60.0,
		CleanupPeriod: config.RateLimiterCleanupPeriod,
	})
	defer limiter.Stop()

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(rateLimitMiddleware(limiter, m))

	setupRoutes(router, cfg, courseService, roomService, salaryService, courseStore, db, registry)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	// Start background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	defaultKey := store.Key{
		Year:   cfg.DefaultYear,
		Term:   cfg.DefaultTerm,
		Campus: cfg.DefaultCampus,
	}

	// Periodic snapshot refresh
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in refresh goroutine")
			}
		}()
		refreshSnapshots(ctx, courseStore, defaultKey, cfg.RefreshInterval, m, log)
	}()

	// Snapshot size metrics updater
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in metrics goroutine")
			}
		}()
		updateSnapshotMetrics(ctx, courseStore, m, log)
	}()

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}
