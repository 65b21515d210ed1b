package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port             string        `validate:"required,numeric"`
	NasaAPIKey       string        `validate:"required"`
	NeoBaseURL       string        `validate:"required,url"`
	RedisURL         string
	RequestTimeout   time.Duration `validate:"gt=0"`
	CacheTTLFeed     time.Duration
	CacheTTLLookup   time.Duration
	RateLimitPerMin  int `validate:"gte=0"`
	CircuitFailLimit int `validate:"gte=0"`
	CircuitCooldown  time.Duration
	LogLevel         string `validate:"oneof=trace debug info warn error"`
	LogFormat        string `validate:"oneof=json console"`
	Version          string
}

// Load reads the process environment. NASA_API_KEY has no built-in
// fallback; a missing key fails validation. Caching and the circuit
// breaker stay off unless CACHE_TTL_* or CIRCUIT_FAIL_LIMIT are set.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		NasaAPIKey:       os.Getenv("NASA_API_KEY"),
		NeoBaseURL:       getEnv("NEO_BASE_URL", "https://api.nasa.gov/neo/rest/v1"),
		RedisURL:         os.Getenv("REDIS_URL"),
		RequestTimeout:   getEnvDuration("NEO_REQUEST_TIMEOUT", 25*time.Second),
		CacheTTLFeed:     getEnvDuration("CACHE_TTL_FEED", 0),
		CacheTTLLookup:   getEnvDuration("CACHE_TTL_LOOKUP", 0),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MIN", 120),
		CircuitFailLimit: getEnvInt("CIRCUIT_FAIL_LIMIT", 0),
		CircuitCooldown:  getEnvDuration("CIRCUIT_COOLDOWN", 20*time.Second),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		Version:          os.Getenv("SERVICE_VERSION"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvDuration accepts whole seconds ("25") or a Go duration ("1500ms").
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
