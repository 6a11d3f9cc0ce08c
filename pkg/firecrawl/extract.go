package firecrawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
)

// Extract runs LLM extraction over one or more URLs and waits for the result.
// URLs may use a trailing /* wildcard to cover a whole domain.
func (c *Client) Extract(ctx context.Context, urls []string, opts *ExtractOptions) (*ExtractResult, error) {
	if len(urls) == 0 {
		return nil, errors.New("extract requires at least one URL")
	}
	if opts == nil {
		opts = &ExtractOptions{}
	}

	var job extractJob
	if err := c.post(ctx, "/v1/extract", extractRequest{URLs: urls, ExtractOptions: opts}, &job); err != nil {
		return nil, fmt.Errorf("starting extract: %w", err)
	}
	if job.ID == "" {
		return nil, errors.New("starting extract: response carried no job id")
	}

	slog.Debug("extract started", slog.String("id", job.ID), slog.Int("urls", len(urls)))

	for {
		var result ExtractResult
		if err := c.get(ctx, "/v1/extract/"+url.PathEscape(job.ID), &result); err != nil {
			return nil, fmt.Errorf("getting extract %q status: %w", job.ID, err)
		}
		result.ID = job.ID

		switch result.Status {
		case StatusCompleted:
			return &result, nil
		case StatusFailed, StatusCancelled:
			return nil, &JobError{Kind: "extract", ID: job.ID, Status: result.Status, Reason: result.Error}
		}

		if err := c.wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for extract %q: %w", job.ID, err)
		}
	}
}
