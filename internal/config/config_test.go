package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("expected default port '5000', got %q", cfg.Port)
	}
	if cfg.SOCBaseURL != "https://classes.rutgers.edu/soc/api/courses.json" {
		t.Errorf("unexpected default SOC base URL: %q", cfg.SOCBaseURL)
	}
	if cfg.SOCMaxRetries != 3 {
		t.Errorf("expected default max retries 3, got %d", cfg.SOCMaxRetries)
	}
	if cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("expected default refresh interval 15m, got %s", cfg.RefreshInterval)
	}
	if cfg.DefaultYear != "2025" || cfg.DefaultTerm != "1" || cfg.DefaultCampus != "NB" {
		t.Errorf("unexpected default key: %s/%s/%s", cfg.DefaultYear, cfg.DefaultTerm, cfg.DefaultCampus)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SOC_TIMEOUT", "10s")
	t.Setenv("SOC_MAX_RETRIES", "5")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.SOCTimeout != 10*time.Second {
		t.Errorf("expected timeout override, got %s", cfg.SOCTimeout)
	}
	if cfg.SOCMaxRetries != 5 {
		t.Errorf("expected retries override, got %d", cfg.SOCMaxRetries)
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("expected rate limit override, got %f", cfg.RateLimitPerMinute)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "5s")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for sub-minute refresh interval")
	}
}

func TestSQLitePath(t *testing.T) {
	t.Setenv("DATA_DIR", "/tmp/rusoc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.SQLitePath() != "/tmp/rusoc/salaries.db" {
		t.Errorf("SQLitePath() = %q", cfg.SQLitePath())
	}
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SOC_MAX_RETRIES", "not-a-number")
	t.Setenv("SOC_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.SOCMaxRetries != 3 {
		t.Errorf("malformed int should fall back to default, got %d", cfg.SOCMaxRetries)
	}
	if cfg.SOCTimeout != UpstreamRequest {
		t.Errorf("malformed duration should fall back to default, got %s", cfg.SOCTimeout)
	}
}
