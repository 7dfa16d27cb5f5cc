package internal

import (
	"fmt"
	"log/slog"
	"net/netip"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/dukerupert/brochure/internal/middleware"
)

type Config struct {
	Env       string
	LogLevel  string
	Port      uint16

	// TrustedProxies lists the peers whose X-Forwarded-For and X-Real-IP
	// headers are believed. Empty means proxy headers are ignored.
	TrustedProxies []netip.Prefix
	Geocoder  GeocoderConfig
	RateLimit RateLimitConfig
	Sentry    SentryConfig
}

// GeocoderConfig configures the address lookup backend.
type GeocoderConfig struct {
	// URL is the Nominatim search endpoint. Extra query parameters in the URL
	// (e.g. countrycodes=de) are sent with every search.
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// RateLimitConfig limits geocoder-backed routes per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// SentryConfig holds configuration for Sentry error tracking
type SentryConfig struct {
	DSN         string
	Enabled     bool
	Environment string
	Release     string
	SampleRate  float64
	Debug       bool
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 3000),
		Geocoder: GeocoderConfig{
			URL:       getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org/search.php"),
			UserAgent: getEnv("GEOCODER_USER_AGENT", "brochure/1.0"),
			Timeout:   time.Duration(getEnvInt("GEOCODER_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("RATE_LIMIT_RPS", 1.0),
			Burst:             int(getEnvInt("RATE_LIMIT_BURST", 3)),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Enabled:     getEnvBool("SENTRY_ENABLED", false), // Disabled by default for development
			Environment: getEnv("SENTRY_ENVIRONMENT", "development"),
			Release:     getEnv("SENTRY_RELEASE", ""),
			SampleRate:  getEnvFloat("SENTRY_SAMPLE_RATE", 1.0),
			Debug:       getEnvBool("SENTRY_DEBUG", false),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	cfg.TrustedProxies, err = middleware.ParseTrustedProxies(getEnv("TRUSTED_PROXIES", ""))
	if err != nil {
		return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	u, err := url.Parse(cfg.Geocoder.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("GEOCODER_URL must be an absolute http(s) URL, got %q", cfg.Geocoder.URL)
	}

	if cfg.Geocoder.Timeout <= 0 {
		return nil, fmt.Errorf("GEOCODER_TIMEOUT_SECONDS must be positive")
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	// Nominatim's usage policy requires an identifying User-Agent
	if cfg.Env == "prod" && cfg.Geocoder.UserAgent == "brochure/1.0" {
		slog.Default().Warn("GEOCODER_USER_AGENT is the default; set it to identify this deployment")
	}

	if cfg.Sentry.Enabled && cfg.Sentry.DSN == "" {
		return nil, fmt.Errorf("SENTRY_DSN required when SENTRY_ENABLED is true")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
