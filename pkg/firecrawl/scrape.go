package firecrawl

import (
	"context"
	"fmt"
)

// ScrapeURL scrapes a single page.
func (c *Client) ScrapeURL(ctx context.Context, url string, opts *ScrapeOptions) (*Document, error) {
	if opts == nil {
		opts = &ScrapeOptions{}
	}

	var resp scrapeResponse
	if err := c.post(ctx, "/v1/scrape", scrapeRequest{URL: url, ScrapeOptions: opts}, &resp); err != nil {
		return nil, fmt.Errorf("scraping %q: %w", url, err)
	}
	if resp.Data == nil {
		return &Document{}, nil
	}
	return resp.Data, nil
}
