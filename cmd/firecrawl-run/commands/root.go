// Package commands implements the firecrawl-run CLI.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the firecrawl-run command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "firecrawl-run",
		Short: "firecrawl-run runs Firecrawl scrape, crawl, map and extract batches from workflow files.",
		Long: "firecrawl-run runs Firecrawl scrape, crawl, map and extract batches from workflow files.\n\n" +
			"Configuration is read from the environment (FIRECRAWL_API_KEY, FIRECRAWL_API_URL, LOG_LEVEL, ...).",
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newInferSchemaCmd())
	root.AddCommand(newParseURLsCmd())

	return root
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
