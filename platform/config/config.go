// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// AIConfig provides settings for the AI text-completion collaborator.
type AIConfig interface {
	GetAIAPIKey() string
	GetAIBaseURL() string
	GetAIModel() string
	IsAIEnabled() bool
}

// NotifierConfig provides settings for the push/WhatsApp notification collaborator.
type NotifierConfig interface {
	GetNotifierURL() string
	GetNotifierKey() string
}

// SchedulerConfig provides settings for the asynq scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetMarketSnapshotInterval() time.Duration
}

// MarketConfig provides settings for market snapshot caching.
type MarketConfig interface {
	GetRedisURL() string
	GetMarketSnapshotTTL() time.Duration
}

// ShareConfig provides settings for outbound share links.
type ShareConfig interface {
	GetPublicBaseURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                    string
	HTTPAddr               string
	DatabaseURL            string
	CORSAllowAll           bool
	CORSOrigins            []string
	CORSAllowCreds         bool
	PublicBaseURL          string
	AIAPIKey               string
	AIBaseURL              string
	AIModel                string
	NotifierURL            string
	NotifierKey            string
	RedisURL               string
	AsynqQueueName         string
	AsynqConcurrency       int
	MarketSnapshotTTL      time.Duration
	MarketSnapshotInterval time.Duration
	ChatRatePerMinute      int
	ChatRateBurst          int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// AIConfig implementation
func (c *Config) GetAIAPIKey() string  { return c.AIAPIKey }
func (c *Config) GetAIBaseURL() string { return c.AIBaseURL }
func (c *Config) GetAIModel() string   { return c.AIModel }
func (c *Config) IsAIEnabled() bool    { return c.AIAPIKey != "" }

// NotifierConfig implementation
func (c *Config) GetNotifierURL() string { return c.NotifierURL }
func (c *Config) GetNotifierKey() string { return c.NotifierKey }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string                     { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string               { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int                { return c.AsynqConcurrency }
func (c *Config) GetMarketSnapshotInterval() time.Duration { return c.MarketSnapshotInterval }

// MarketConfig implementation
func (c *Config) GetMarketSnapshotTTL() time.Duration { return c.MarketSnapshotTTL }

// ShareConfig implementation
func (c *Config) GetPublicBaseURL() string { return c.PublicBaseURL }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                    getEnv("APP_ENV", "development"),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		CORSAllowAll:           corsAllowAll,
		CORSOrigins:            corsOrigins,
		CORSAllowCreds:         strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		PublicBaseURL:          getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		AIAPIKey:               getEnv("AI_API_KEY", ""),
		AIBaseURL:              getEnv("AI_BASE_URL", ""),
		AIModel:                getEnv("AI_MODEL", ""),
		NotifierURL:            getEnv("NOTIFIER_URL", ""),
		NotifierKey:            getEnv("NOTIFIER_KEY", ""),
		RedisURL:               getEnv("REDIS_URL", ""),
		AsynqQueueName:         getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:       mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		MarketSnapshotTTL:      mustDuration(getEnv("MARKET_SNAPSHOT_TTL", "1h")),
		MarketSnapshotInterval: mustDuration(getEnv("MARKET_SNAPSHOT_INTERVAL", "6h")),
		ChatRatePerMinute:      mustInt(getEnv("CHAT_RATE_PER_MINUTE", "30")),
		ChatRateBurst:          mustInt(getEnv("CHAT_RATE_BURST", "10")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
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
