// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// AIConfig provides settings for the intent classification backend.
type AIConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetAITemperature() float32
	IsAIEnabled() bool
}

// ScoringConfig provides settings for the scoring module.
type ScoringConfig interface {
	GetScoringConcurrency() int
	GetMaxUploadBytes() int64
}

// Config holds all application settings loaded from the environment.
type Config struct {
	Env                string
	HTTPAddr           string
	CORSAllowAll       bool
	CORSOrigins        []string
	RateLimitRPS       float64
	RateLimitBurst     int
	MaxUploadBytes     int64
	GeminiAPIKey       string
	GeminiModel        string
	AITemperature      float32
	ScoringConcurrency int
}

// Load reads configuration from the environment, with .env support for
// local development. The AI backend is enabled purely by the presence of
// GEMINI_API_KEY; its absence switches the classifier to fallback mode.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:       corsAllowAll,
		CORSOrigins:        corsOrigins,
		RateLimitRPS:       mustFloat(getEnv("RATE_LIMIT_RPS", "20"), 20),
		RateLimitBurst:     mustInt(getEnv("RATE_LIMIT_BURST", "40"), 40),
		MaxUploadBytes:     mustInt64(getEnv("MAX_UPLOAD_BYTES", "10485760"), 10<<20),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		AITemperature:      float32(mustFloat(getEnv("AI_TEMPERATURE", "0.4"), 0.4)),
		ScoringConcurrency: mustInt(getEnv("SCORING_CONCURRENCY", "4"), 4),
	}

	if cfg.ScoringConcurrency < 1 {
		return nil, fmt.Errorf("SCORING_CONCURRENCY must be at least 1")
	}
	if cfg.MaxUploadBytes < 1 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if cfg.AITemperature < 0 || cfg.AITemperature > 2 {
		return nil, fmt.Errorf("AI_TEMPERATURE must be in [0, 2]")
	}

	return cfg, nil
}

// GetHTTPAddr returns the HTTP listen address.
func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }

// GetCORSAllowAll reports whether all origins are allowed.
func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }

// GetCORSOrigins returns the allowed CORS origins.
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// GetRateLimitRPS returns the per-IP request rate limit.
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }

// GetRateLimitBurst returns the per-IP rate limit burst size.
func (c *Config) GetRateLimitBurst() int { return c.RateLimitBurst }

// GetMaxUploadBytes returns the maximum accepted upload size.
func (c *Config) GetMaxUploadBytes() int64 { return c.MaxUploadBytes }

// GetGeminiAPIKey returns the Gemini API credential.
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }

// GetGeminiModel returns the Gemini model name.
func (c *Config) GetGeminiModel() string { return c.GeminiModel }

// GetAITemperature returns the sampling temperature for intent classification.
func (c *Config) GetAITemperature() float32 { return c.AITemperature }

// IsAIEnabled reports whether the AI backend is configured.
func (c *Config) IsAIEnabled() bool { return c.GeminiAPIKey != "" }

// GetScoringConcurrency returns the bound on concurrent AI calls per pass.
func (c *Config) GetScoringConcurrency() int { return c.ScoringConcurrency }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func mustInt64(value string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustFloat(value string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
