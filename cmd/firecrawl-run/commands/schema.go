package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/firecrawl-mcp/pkg/schemagen"
	"github.com/usestring/firecrawl-mcp/pkg/urllist"
)

func newInferSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer-schema [file|-]",
		Short: "Prints the JSON Schema inferred from an example JSON document (stdin when no file is given).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading example: %w", err)
			}

			schema, err := schemagen.InferJSON(data)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), schema)
		},
	}
}

func newParseURLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-urls <input>",
		Short: "Prints the URL list parsed from a JSON array, comma-separated list or single URL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), urllist.Parse(args[0]))
		},
	}
}
