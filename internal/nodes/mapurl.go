package nodes

import (
	"context"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Map lists the URLs of a site per item.
type Map struct {
	deps *Deps
}

// NewMap creates a map node.
func NewMap(d *Deps) *Map {
	return &Map{deps: d}
}

func (n *Map) Name() string { return NodeMap }

type mapCacheKey struct {
	URL     string                `json:"url"`
	Options *firecrawl.MapOptions `json:"options"`
}

// Execute maps p.URL. Identical requests are served from the response cache.
func (n *Map) Execute(ctx context.Context, p MapParams) (*Output, error) {
	url, err := requireURL(p.URL)
	if err != nil {
		return nil, err
	}
	if err := nonNegative("limit", p.Limit); err != nil {
		return nil, err
	}

	opts := &firecrawl.MapOptions{
		Search:            p.Search,
		IgnoreSitemap:     p.IgnoreSitemap,
		IncludeSubdomains: p.IncludeSubdomains,
		Limit:             p.Limit,
	}

	debug := debugInfo(p.EnableDebugLogs, n.Name(), map[string]any{
		"url":     url,
		"options": opts,
	})

	key, cacheable := cacheKey(n.Name(), mapCacheKey{URL: url, Options: opts})
	if cacheable {
		if v, ok := n.deps.Cache.Get(key); ok {
			if debug != nil {
				debug["cache_hit"] = true
			}
			return &Output{Data: v, Debug: debug}, nil
		}
	}

	result, err := n.deps.Client.MapURL(ctx, url, opts)
	if err != nil {
		return nil, WrapFirecrawlError(err)
	}
	if cacheable {
		n.deps.Cache.Put(key, result)
	}

	return &Output{Data: result, Debug: debug}, nil
}
