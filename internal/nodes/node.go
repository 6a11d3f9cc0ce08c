// Package nodes runs Firecrawl operations over batches of parameter items.
//
// Each operation is a Node: it validates one item's parameters, calls the
// Firecrawl API and returns the result. Run drives a node over a batch,
// producing one result per item in input order.
package nodes

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/usestring/firecrawl-mcp/internal/cache"
	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Node names.
const (
	NodeScrape  = "scrape"
	NodeCrawl   = "crawl"
	NodeMap     = "map"
	NodeExtract = "extract"
)

// Node executes a single item of parameters.
type Node[P any] interface {
	Name() string
	Execute(ctx context.Context, params P) (*Output, error)
}

// Output is the result of executing one item.
type Output struct {
	Data  any
	Debug map[string]any
}

// Deps contains the dependencies shared by all nodes.
type Deps struct {
	Client            *firecrawl.Client
	Cache             *cache.ResponseCache
	DefaultCrawlLimit int
}

// NewDeps builds node dependencies from config.
func NewDeps(client *firecrawl.Client, cfg *config.Config) (*Deps, error) {
	c, err := cache.NewResponseCache(cfg.ResultCacheMaxItems)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Client:            client,
		Cache:             c,
		DefaultCrawlLimit: cfg.DefaultCrawlLimit,
	}, nil
}

// cacheKey derives a cache key from a node name and its request.
// Struct fields marshal in declaration order, so equal requests give equal keys.
func cacheKey(node string, request any) (string, bool) {
	b, err := json.Marshal(request)
	if err != nil {
		return "", false
	}
	return node + ":" + string(b), true
}

// debugInfo returns the debug map for an item, logging it at debug level.
// It returns nil when debug output was not requested.
func debugInfo(enabled bool, node string, fields map[string]any) map[string]any {
	if !enabled {
		return nil
	}
	attrs := []any{slog.String("node", node)}
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	slog.Debug("node request", attrs...)
	return fields
}
