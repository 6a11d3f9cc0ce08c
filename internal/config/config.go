// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Node defaults
const (
	DefaultCrawlLimitValue     = 50
	DefaultResultCacheMaxItems = 128
	DefaultMaxBatchItemsValue  = 100
	DefaultMaxConcurrencyValue = 4
)

// Config holds all configuration for the server and CLI.
type Config struct {
	FirecrawlAPIKey   string        // FIRECRAWL_API_KEY, required
	FirecrawlAPIURL   string        // FIRECRAWL_API_URL, default "https://api.firecrawl.dev"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 120000ms (2m)
	PollInterval      time.Duration // POLL_INTERVAL_MS, default 2000ms (2s)

	// Node behavior
	ContinueOnFail      bool // CONTINUE_ON_FAIL, default false
	DefaultCrawlLimit   int  // DEFAULT_CRAWL_LIMIT, default 50
	ResultCacheMaxItems int  // RESULT_CACHE_MAX_ITEMS, default 128 (0 disables)
	MaxBatchItems       int  // MAX_BATCH_ITEMS, default 100
	MaxConcurrency      int  // MAX_CONCURRENCY, default 4

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" (default) or "json"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		FirecrawlAPIKey:   getEnvString("FIRECRAWL_API_KEY", ""),
		FirecrawlAPIURL:   getEnvString("FIRECRAWL_API_URL", firecrawl.DefaultBaseURL),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 120000),
		PollInterval:      getEnvDurationMs("POLL_INTERVAL_MS", 2000),

		ContinueOnFail:      getEnvBool("CONTINUE_ON_FAIL", false),
		DefaultCrawlLimit:   getEnvInt("DEFAULT_CRAWL_LIMIT", DefaultCrawlLimitValue),
		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", DefaultResultCacheMaxItems),
		MaxBatchItems:       getEnvInt("MAX_BATCH_ITEMS", DefaultMaxBatchItemsValue),
		MaxConcurrency:      getEnvInt("MAX_CONCURRENCY", DefaultMaxConcurrencyValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Credentials returns the Firecrawl credentials carried by the config.
func (c *Config) Credentials() firecrawl.Credentials {
	return firecrawl.Credentials{
		APIKey: c.FirecrawlAPIKey,
		APIURL: c.FirecrawlAPIURL,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
