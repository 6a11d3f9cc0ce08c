package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"FIRECRAWL_API_KEY", "FIRECRAWL_API_URL", "HTTP_CLIENT_TIMEOUT_MS", "POLL_INTERVAL_MS",
		"CONTINUE_ON_FAIL", "DEFAULT_CRAWL_LIMIT", "RESULT_CACHE_MAX_ITEMS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Empty(t, cfg.FirecrawlAPIKey)
	assert.Equal(t, firecrawl.DefaultBaseURL, cfg.FirecrawlAPIURL)
	assert.Equal(t, 2*time.Minute, cfg.HTTPClientTimeout)
	assert.Equal(t, 2*time.Second, cfg.PollInterval)
	assert.False(t, cfg.ContinueOnFail)
	assert.Equal(t, DefaultCrawlLimitValue, cfg.DefaultCrawlLimit)
	assert.Equal(t, DefaultResultCacheMaxItems, cfg.ResultCacheMaxItems)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FIRECRAWL_API_KEY", "fc-123")
	t.Setenv("FIRECRAWL_API_URL", "http://localhost:3002")
	t.Setenv("POLL_INTERVAL_MS", "250")
	t.Setenv("CONTINUE_ON_FAIL", "yes")
	t.Setenv("RESULT_CACHE_MAX_ITEMS", "0")
	t.Setenv("MAX_CONCURRENCY", "not-a-number")

	cfg := Load()
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.True(t, cfg.ContinueOnFail)
	assert.Equal(t, 0, cfg.ResultCacheMaxItems)
	assert.Equal(t, DefaultMaxConcurrencyValue, cfg.MaxConcurrency)
	assert.Equal(t, firecrawl.Credentials{APIKey: "fc-123", APIURL: "http://localhost:3002"}, cfg.Credentials())
}
