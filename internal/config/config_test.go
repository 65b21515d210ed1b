package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("NASA_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when NASA_API_KEY is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NASA_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("NEO_REQUEST_TIMEOUT", "")
	t.Setenv("NEO_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("CIRCUIT_FAIL_LIMIT", "")
	t.Setenv("RATE_LIMIT_PER_MIN", "")
	t.Setenv("CACHE_TTL_FEED", "")
	t.Setenv("CACHE_TTL_LOOKUP", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.RequestTimeout != 25*time.Second {
		t.Fatalf("expected 25s upstream timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.CacheTTLFeed != 0 || cfg.CacheTTLLookup != 0 {
		t.Fatalf("expected caching off by default, got %s/%s", cfg.CacheTTLFeed, cfg.CacheTTLLookup)
	}
	if cfg.CircuitFailLimit != 0 {
		t.Fatalf("expected circuit breaker off by default, got %d", cfg.CircuitFailLimit)
	}
	if cfg.NeoBaseURL != "https://api.nasa.gov/neo/rest/v1" {
		t.Fatalf("unexpected base url %q", cfg.NeoBaseURL)
	}
}

func TestGetEnvDurationForms(t *testing.T) {
	t.Setenv("X_DUR", "3")
	if got := getEnvDuration("X_DUR", time.Minute); got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
	t.Setenv("X_DUR", "250ms")
	if got := getEnvDuration("X_DUR", time.Minute); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}
	t.Setenv("X_DUR", "soon")
	if got := getEnvDuration("X_DUR", time.Minute); got != time.Minute {
		t.Fatalf("expected default, got %s", got)
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Config{
		Port:             "8080",
		NasaAPIKey:       "k",
		NeoBaseURL:       "https://example.com",
		RequestTimeout:   time.Second,
		CircuitFailLimit: 1,
		LogLevel:         "info",
		LogFormat:        "xml",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for log format")
	}
}
