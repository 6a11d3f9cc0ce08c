package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/internal/nodes"
	"github.com/usestring/firecrawl-mcp/pkg/types"
)

// BatchInput is the input of every node tool: a list of parameter items plus
// the options that control the run.
type BatchInput[P any] struct {
	Items          []P    `json:"items" jsonschema:"Parameter items; the node runs once per item and returns one result per item in order"`
	ContinueOnFail *bool  `json:"continue_on_fail,omitempty" jsonschema:"Record failed items and keep going instead of failing the call (default from CONTINUE_ON_FAIL)"`
	Filter         string `json:"filter,omitempty" jsonschema:"jq expression applied to each successful item's data, e.g. .markdown or .links[]"`
	Concurrency    int    `json:"concurrency,omitempty" jsonschema:"Items to run at once (default 1, capped by MAX_CONCURRENCY)"`
}

// ToolScrape scrapes one URL per item.
func ToolScrape(d *Deps) sdkmcp.ToolHandlerFor[BatchInput[nodes.ScrapeParams], types.BatchOutput] {
	return batchHandler[nodes.ScrapeParams](d, nodes.NewScrape(d.Nodes))
}

// ToolCrawl crawls one site per item.
func ToolCrawl(d *Deps) sdkmcp.ToolHandlerFor[BatchInput[nodes.CrawlParams], types.BatchOutput] {
	return batchHandler[nodes.CrawlParams](d, nodes.NewCrawl(d.Nodes))
}

// ToolMap maps one site per item.
func ToolMap(d *Deps) sdkmcp.ToolHandlerFor[BatchInput[nodes.MapParams], types.BatchOutput] {
	return batchHandler[nodes.MapParams](d, nodes.NewMap(d.Nodes))
}

// ToolExtract runs one extraction per item.
func ToolExtract(d *Deps) sdkmcp.ToolHandlerFor[BatchInput[nodes.ExtractParams], types.BatchOutput] {
	return batchHandler[nodes.ExtractParams](d, nodes.NewExtract(d.Nodes))
}

func batchHandler[P any](d *Deps, node nodes.Node[P]) sdkmcp.ToolHandlerFor[BatchInput[P], types.BatchOutput] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input BatchInput[P]) (*sdkmcp.CallToolResult, types.BatchOutput, error) {
		if len(input.Items) == 0 {
			return nil, types.BatchOutput{}, nodes.ErrInvalidInput("items must contain at least one item")
		}

		out, err := nodes.Run(ctx, node, input.Items, d.runOptions(input.ContinueOnFail, input.Filter, input.Concurrency))
		if err != nil {
			return nil, types.BatchOutput{}, err
		}

		d.StoreRun(out)
		return nil, *out, nil
	}
}

// runOptions resolves per-call run options against the configured defaults.
func (d *Deps) runOptions(continueOnFail *bool, filter string, concurrency int) nodes.RunOptions {
	opts := nodes.RunOptions{
		ContinueOnFail: d.Config.ContinueOnFail,
		Filter:         filter,
		Concurrency:    concurrency,
		MaxItems:       d.Config.MaxBatchItems,
	}
	if continueOnFail != nil {
		opts.ContinueOnFail = *continueOnFail
	}
	if d.Config.MaxConcurrency > 0 && opts.Concurrency > d.Config.MaxConcurrency {
		opts.Concurrency = d.Config.MaxConcurrency
	}
	return opts
}
