package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/internal/logging"
	"github.com/usestring/firecrawl-mcp/internal/nodes"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
	"github.com/usestring/firecrawl-mcp/pkg/types"
)

// Workflow is a batch of items for one node, as read from a workflow file.
type Workflow struct {
	Node           string           `yaml:"node"`
	ContinueOnFail *bool            `yaml:"continue_on_fail"`
	Filter         string           `yaml:"filter"`
	Concurrency    int              `yaml:"concurrency"`
	Items          []map[string]any `yaml:"items"`
}

// LoadWorkflow reads a YAML (or JSON) workflow file.
func LoadWorkflow(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow: %w", err)
	}
	return ParseWorkflow(data)
}

// ParseWorkflow parses and checks a workflow document.
func ParseWorkflow(data []byte) (*Workflow, error) {
	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing workflow: %w", err)
	}
	if wf.Node == "" {
		return nil, fmt.Errorf("workflow: node is required")
	}
	if len(wf.Items) == 0 {
		return nil, fmt.Errorf("workflow: items must contain at least one item")
	}
	return &wf, nil
}

// RunOptions resolves the workflow's run options. A continue_on_fail set in
// the file, true or false, wins over CONTINUE_ON_FAIL.
func (wf *Workflow) RunOptions(cfg *config.Config) nodes.RunOptions {
	opts := nodes.RunOptions{
		ContinueOnFail: cfg.ContinueOnFail,
		Filter:         wf.Filter,
		Concurrency:    wf.Concurrency,
		MaxItems:       cfg.MaxBatchItems,
	}
	if wf.ContinueOnFail != nil {
		opts.ContinueOnFail = *wf.ContinueOnFail
	}
	return opts
}

func newRunCmd() *cobra.Command {
	var (
		continueOnFail bool
		filter         string
		concurrency    int
	)

	cmd := &cobra.Command{
		Use:   "run <workflow.yaml>",
		Short: "Runs a workflow file and prints the batch output as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := LoadWorkflow(args[0])
			if err != nil {
				return err
			}

			cfg := config.Load()
			cleanup, err := logging.Setup(logging.Config{
				Level:      cfg.LogLevel,
				Format:     cfg.LogFormat,
				FilePath:   cfg.LogFile,
				MaxSizeMB:  cfg.LogMaxSizeMB,
				MaxBackups: cfg.LogMaxBackups,
				MaxAgeDays: cfg.LogMaxAgeDays,
				Compress:   cfg.LogCompress,
			})
			if err != nil {
				return fmt.Errorf("setting up logging: %w", err)
			}
			defer cleanup()

			client, err := cfg.Credentials().Client(
				firecrawl.WithHTTPClient(&http.Client{Timeout: cfg.HTTPClientTimeout}),
				firecrawl.WithPollInterval(cfg.PollInterval),
			)
			if err != nil {
				return err
			}
			deps, err := nodes.NewDeps(client, cfg)
			if err != nil {
				return err
			}

			opts := wf.RunOptions(cfg)
			flags := cmd.Flags()
			if flags.Changed("continue-on-fail") {
				opts.ContinueOnFail = continueOnFail
			}
			if flags.Changed("filter") {
				opts.Filter = filter
			}
			if flags.Changed("concurrency") {
				opts.Concurrency = concurrency
			}
			if cfg.MaxConcurrency > 0 && opts.Concurrency > cfg.MaxConcurrency {
				opts.Concurrency = cfg.MaxConcurrency
			}

			slog.Info("running workflow", slog.String("file", args[0]), slog.String("node", wf.Node))

			out, err := RunWorkflow(cmd.Context(), deps, wf, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&continueOnFail, "continue-on-fail", false, "Record failed items and keep going.")
	cmd.Flags().StringVar(&filter, "filter", "", "jq expression applied to each successful item's data.")
	cmd.Flags().IntVar(&concurrency, "concurrency", 1, "Items to run at once.")

	return cmd
}

// RunWorkflow decodes the workflow items for its node and runs the batch.
func RunWorkflow(ctx context.Context, deps *nodes.Deps, wf *Workflow, opts nodes.RunOptions) (*types.BatchOutput, error) {
	switch wf.Node {
	case nodes.NodeScrape:
		return runNode(ctx, nodes.NewScrape(deps), wf.Items, opts)
	case nodes.NodeCrawl:
		return runNode(ctx, nodes.NewCrawl(deps), wf.Items, opts)
	case nodes.NodeMap:
		return runNode(ctx, nodes.NewMap(deps), wf.Items, opts)
	case nodes.NodeExtract:
		return runNode(ctx, nodes.NewExtract(deps), wf.Items, opts)
	default:
		return nil, fmt.Errorf("unknown node %q (want %s, %s, %s or %s)",
			wf.Node, nodes.NodeScrape, nodes.NodeCrawl, nodes.NodeMap, nodes.NodeExtract)
	}
}

func runNode[P any](ctx context.Context, node nodes.Node[P], raw []map[string]any, opts nodes.RunOptions) (*types.BatchOutput, error) {
	items, err := decodeItems[P](raw)
	if err != nil {
		return nil, fmt.Errorf("%s items: %w", node.Name(), err)
	}
	return nodes.Run(ctx, node, items, opts)
}

// decodeItems converts loosely typed workflow items into parameter structs.
// Unknown keys are rejected so typos do not silently drop options.
func decodeItems[P any](raw []map[string]any) ([]P, error) {
	items := make([]P, len(raw))
	for i, r := range raw {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&items[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return items, nil
}
