package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
	"github.com/usestring/firecrawl-mcp/pkg/mcpsrv"
)

func main() {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Credentials come from FIRECRAWL_API_KEY and FIRECRAWL_API_URL
	// (the URL defaults to https://api.firecrawl.dev)
	cfg := config.Load()
	fc, err := cfg.Credentials().Client(
		firecrawl.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
		firecrawl.WithPollInterval(cfg.PollInterval),
	)
	if err != nil {
		slog.Error("invalid Firecrawl credentials", "error", err)
		os.Exit(1)
	}

	// Logging and limits are configured via environment variables:
	// - LOG_LEVEL: debug, info, warn, error (default: info)
	// - LOG_FILE: path to log file (default: stderr only)
	// - MAX_BATCH_ITEMS, MAX_CONCURRENCY, DEFAULT_CRAWL_LIMIT
	// - etc. (see internal/config for all options)
	server, err := mcpsrv.NewServer(fc, mcpsrv.WithConfig(cfg))
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting firecrawl MCP server on stdio", "api_url", fc.BaseURL())
	if err := server.Run(ctx); err != nil && err != context.Canceled {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
