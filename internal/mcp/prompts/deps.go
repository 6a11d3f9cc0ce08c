// Package prompts contains MCP prompt implementations for Firecrawl.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultCrawlLimit int
	MaxBatchItems     int
}
