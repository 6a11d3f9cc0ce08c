package nodes

import (
	"context"

	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Crawl crawls a site per item and waits for the job to finish.
// Crawl results are not cached; a site's content changes between crawls.
type Crawl struct {
	deps *Deps
}

// NewCrawl creates a crawl node.
func NewCrawl(d *Deps) *Crawl {
	return &Crawl{deps: d}
}

func (n *Crawl) Name() string { return NodeCrawl }

// Execute crawls p.URL.
func (n *Crawl) Execute(ctx context.Context, p CrawlParams) (*Output, error) {
	url, opts, err := p.request(n.deps.DefaultCrawlLimit)
	if err != nil {
		return nil, err
	}

	debug := debugInfo(p.EnableDebugLogs, n.Name(), map[string]any{
		"url":     url,
		"options": opts,
	})

	status, err := n.deps.Client.CrawlURL(ctx, url, opts)
	if err != nil {
		return nil, WrapFirecrawlError(err)
	}

	return &Output{Data: status, Debug: debug}, nil
}

func (p CrawlParams) request(defaultLimit int) (string, *firecrawl.CrawlOptions, error) {
	url, err := requireURL(p.URL)
	if err != nil {
		return "", nil, err
	}
	if err := nonNegative("limit", p.Limit); err != nil {
		return "", nil, err
	}
	if err := nonNegative("max_depth", p.MaxDepth); err != nil {
		return "", nil, err
	}
	formats, err := normalizeFormats(p.Formats)
	if err != nil {
		return "", nil, err
	}

	limit := p.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit <= 0 {
		limit = config.DefaultCrawlLimitValue
	}

	scrape := &firecrawl.ScrapeOptions{
		Formats:     formats,
		IncludeTags: listOrNil(p.IncludeTags),
		ExcludeTags: listOrNil(p.ExcludeTags),
	}
	if p.OnlyMainContent {
		scrape.OnlyMainContent = &p.OnlyMainContent
	}

	return url, &firecrawl.CrawlOptions{
		Limit:              limit,
		MaxDepth:           p.MaxDepth,
		IncludePaths:       listOrNil(p.IncludePaths),
		ExcludePaths:       listOrNil(p.ExcludePaths),
		AllowExternalLinks: p.AllowExternalLinks,
		IgnoreSitemap:      p.IgnoreSitemap,
		ScrapeOptions:      scrape,
	}, nil
}
