package firecrawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// StartCrawl submits a crawl job and returns its handle without waiting.
func (c *Client) StartCrawl(ctx context.Context, rawURL string, opts *CrawlOptions) (*CrawlJob, error) {
	if opts == nil {
		opts = &CrawlOptions{}
	}

	var job CrawlJob
	if err := c.post(ctx, "/v1/crawl", crawlRequest{URL: rawURL, CrawlOptions: opts}, &job); err != nil {
		return nil, fmt.Errorf("starting crawl of %q: %w", rawURL, err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("starting crawl of %q: response carried no job id", rawURL)
	}
	return &job, nil
}

// CrawlStatus retrieves the current state of a crawl job.
func (c *Client) CrawlStatus(ctx context.Context, id string) (*CrawlStatus, error) {
	var status CrawlStatus
	if err := c.get(ctx, "/v1/crawl/"+url.PathEscape(id), &status); err != nil {
		return nil, fmt.Errorf("getting crawl %q status: %w", id, err)
	}
	status.ID = id
	return &status, nil
}

// CrawlURL crawls a site and waits for the job to finish. Paginated results
// are followed and merged into the returned status. A failed or cancelled job
// is reported as a *JobError.
func (c *Client) CrawlURL(ctx context.Context, rawURL string, opts *CrawlOptions) (*CrawlStatus, error) {
	job, err := c.StartCrawl(ctx, rawURL, opts)
	if err != nil {
		return nil, err
	}

	slog.Debug("crawl started", slog.String("id", job.ID), slog.String("url", rawURL))

	for {
		status, err := c.CrawlStatus(ctx, job.ID)
		if err != nil {
			return nil, err
		}

		switch status.Status {
		case StatusCompleted:
			return c.collectPages(ctx, status)
		case StatusFailed, StatusCancelled:
			return nil, &JobError{Kind: "crawl", ID: job.ID, Status: status.Status}
		}

		slog.Debug("crawl in progress",
			slog.String("id", job.ID),
			slog.Int("completed", status.Completed),
			slog.Int("total", status.Total),
		)

		if err := c.wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for crawl %q: %w", job.ID, err)
		}
	}
}

// collectPages follows "next" links of a completed crawl.
func (c *Client) collectPages(ctx context.Context, status *CrawlStatus) (*CrawlStatus, error) {
	seen := make(map[string]bool)
	next := status.Next
	for next != "" && !seen[next] {
		seen[next] = true

		var page CrawlStatus
		if err := c.getURL(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("fetching crawl %q page: %w", status.ID, err)
		}
		status.Data = append(status.Data, page.Data...)
		next = page.Next
	}

	status.Next = ""
	if status.Data == nil {
		status.Data = []*Document{}
	}
	return status, nil
}
