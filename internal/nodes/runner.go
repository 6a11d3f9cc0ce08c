package nodes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/usestring/firecrawl-mcp/internal/query"
	"github.com/usestring/firecrawl-mcp/pkg/types"
)

// RunOptions control how a batch is executed.
type RunOptions struct {
	// ContinueOnFail records failed items in the output instead of aborting.
	ContinueOnFail bool
	// Filter is an optional jq expression applied to each successful item's data.
	Filter string
	// Concurrency is the number of items executed at once. Values below 2 run
	// items sequentially.
	Concurrency int
	// MaxItems rejects batches larger than this. Zero means no limit.
	MaxItems int
}

// Run executes node once per item and returns one result per item, in input
// order. When an item fails and ContinueOnFail is unset, Run stops and
// returns an *ItemError.
func Run[P any](ctx context.Context, node Node[P], items []P, opts RunOptions) (*types.BatchOutput, error) {
	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		return nil, ErrInvalidInput(fmt.Sprintf("too many items: %d (max %d)", len(items), opts.MaxItems))
	}

	var filter *query.Filter
	if opts.Filter != "" {
		f, err := query.Compile(opts.Filter)
		if err != nil {
			return nil, &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
		}
		filter = f
	}

	runID := uuid.NewString()
	logger := slog.With(slog.String("run_id", runID), slog.String("node", node.Name()))
	start := time.Now()

	logger.Info("run started",
		slog.Int("items", len(items)),
		slog.Int("concurrency", opts.Concurrency),
		slog.Bool("continue_on_fail", opts.ContinueOnFail),
	)

	results := make([]types.ItemResult, len(items))

	execute := func(ctx context.Context, i int) error {
		itemStart := time.Now()
		res, err := runItem(ctx, node, items[i], filter)
		if err != nil {
			logger.Warn("item failed",
				slog.Int("index", i),
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(itemStart).Milliseconds()),
			)
			if !opts.ContinueOnFail {
				return &ItemError{Index: i, Node: node.Name(), Err: err}
			}
			results[i] = types.ItemResult{
				Success: false,
				Error:   err.Error(),
				Code:    ErrorCode(err),
			}
			return nil
		}
		logger.Debug("item completed",
			slog.Int("index", i),
			slog.Int64("duration_ms", time.Since(itemStart).Milliseconds()),
		)
		results[i] = res
		return nil
	}

	if opts.Concurrency > 1 && len(items) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i := range items {
			g.Go(func() error {
				if err := gctx.Err(); err != nil && !opts.ContinueOnFail {
					return err
				}
				return execute(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			logger.Error("run aborted", slog.String("error", err.Error()))
			return nil, err
		}
	} else {
		for i := range items {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := execute(ctx, i); err != nil {
				logger.Error("run aborted", slog.String("error", err.Error()))
				return nil, err
			}
		}
	}

	out := &types.BatchOutput{
		RunID: runID,
		Node:  node.Name(),
		Items: results,
		Summary: types.BatchSummary{
			Total:      len(results),
			DurationMs: time.Since(start).Milliseconds(),
		},
	}
	for _, r := range results {
		if r.Success {
			out.Summary.Succeeded++
		} else {
			out.Summary.Failed++
		}
	}

	logger.Info("run completed",
		slog.Int("succeeded", out.Summary.Succeeded),
		slog.Int("failed", out.Summary.Failed),
		slog.Int64("duration_ms", out.Summary.DurationMs),
	)

	return out, nil
}

func runItem[P any](ctx context.Context, node Node[P], params P, filter *query.Filter) (types.ItemResult, error) {
	out, err := node.Execute(ctx, params)
	if err != nil {
		return types.ItemResult{}, err
	}
	if out == nil {
		out = &Output{}
	}

	res := types.ItemResult{
		Success: true,
		Data:    out.Data,
		Debug:   out.Debug,
	}
	if filter != nil {
		res.Data, err = filter.Apply(out.Data)
		if err != nil {
			return types.ItemResult{}, &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
		}
		res.Unfiltered = out.Data
	}
	return res, nil
}
