package firecrawl

import (
	"context"
	"fmt"
)

// MapURL discovers the URLs of a site without scraping them.
func (c *Client) MapURL(ctx context.Context, url string, opts *MapOptions) (*MapResult, error) {
	if opts == nil {
		opts = &MapOptions{}
	}

	var resp MapResult
	if err := c.post(ctx, "/v1/map", mapRequest{URL: url, MapOptions: opts}, &resp); err != nil {
		return nil, fmt.Errorf("mapping %q: %w", url, err)
	}
	if resp.Links == nil {
		resp.Links = []string{}
	}
	return &resp, nil
}
