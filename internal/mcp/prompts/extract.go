package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleExtractStructuredData implements the structured extraction workflow.
func HandleExtractStructuredData(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments
		urls := args["urls"]
		example := args["example"]

		var sb strings.Builder

		sb.WriteString("# Extract Structured Data\n\n")
		sb.WriteString("You are extracting structured records from web pages with Firecrawl. ")
		sb.WriteString("Define the output shape first, then extract, then check the result against the shape.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Check the URL list** - `firecrawl_parse_urls` shows exactly which URLs extract will use\n")
		sb.WriteString("   - Empty entries are dropped before extraction; a trailing `/*` covers a whole domain\n")
		sb.WriteString("2. **Define the schema** - Write an example of one output record\n")
		sb.WriteString("   - `firecrawl_infer_schema` turns it into a JSON Schema: every key is required, arrays follow their first element\n")
		sb.WriteString("   - Put every field you want in the example, including nested objects and one array element\n")
		sb.WriteString("3. **Extract** - Call `firecrawl_extract` with `extraction_method: \"schema\"`\n")
		sb.WriteString("   - Either pass `schema_definition_type: \"example\"` with `json_example`, or the inferred schema as `schema_definition`\n")
		sb.WriteString("   - Set `validate_result: true` so mismatched data fails the item with a `SCHEMA_MISMATCH` code\n")
		sb.WriteString("4. **Review** - Use `filter: \".data\"` to drop job metadata from the output\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		if urls != "" {
			sb.WriteString(fmt.Sprintf("firecrawl_parse_urls(input=%q)\n", urls))
		}
		if example != "" {
			sb.WriteString(fmt.Sprintf("firecrawl_infer_schema(example=%q)\n", example))
			sb.WriteString(fmt.Sprintf("firecrawl_extract(items=[{urls: %q, extraction_method: \"schema\", schema_definition_type: \"example\", json_example: %q, validate_result: true}], filter=\".data\")\n", urls, example))
		} else {
			sb.WriteString("firecrawl_infer_schema(example=\"{...one record...}\")\n")
			sb.WriteString("firecrawl_extract(items=[{urls: \"...\", extraction_method: \"schema\", schema_definition: \"<schema>\", validate_result: true}], filter=\".data\")\n")
		}
		sb.WriteString("```\n\n")

		sb.WriteString("## Constraints\n\n")
		sb.WriteString(fmt.Sprintf("- At most %d items per call; group URLs that share a schema into one item instead\n", cfg.MaxBatchItems))
		sb.WriteString("- Do NOT scrape pages first just to read them - extract works on the live pages\n")
		sb.WriteString("- Keep prompts short and specific; the schema carries the structure\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **`No valid URLs provided`?** Check the URL list with `firecrawl_parse_urls`\n")
		sb.WriteString("- **`Invalid schema`?** Validate the schema text with `firecrawl_validate_schema` against a sample record\n")
		sb.WriteString("- **`SCHEMA_MISMATCH`?** Loosen the example or add an `extraction_prompt` describing the missing fields\n")
		sb.WriteString("- **`RATE_LIMITED`?** Lower `concurrency` and retry\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for structured extraction with a schema",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
