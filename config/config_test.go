package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Redis.TTL != 10*time.Minute {
		t.Errorf("expected cache ttl 10m, got %s", cfg.Redis.TTL)
	}
	if cfg.Digest.Schedule != "0 7 1 * *" {
		t.Errorf("expected monthly digest schedule, got %s", cfg.Digest.Schedule)
	}
	if cfg.Report.Locale != "en" {
		t.Errorf("expected locale en, got %s", cfg.Report.Locale)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("REPORT_CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("DIGEST_CONCURRENCY", "not-a-number")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis to be disabled")
	}
	if cfg.Redis.TTL != 90*time.Second {
		t.Errorf("expected ttl 90s, got %s", cfg.Redis.TTL)
	}
	if cfg.RateLimit.RequestsPerSecond != 2.5 {
		t.Errorf("expected 2.5 rps, got %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Digest.Concurrency != 4 {
		t.Errorf("expected invalid value to fall back to 4, got %d", cfg.Digest.Concurrency)
	}
}
