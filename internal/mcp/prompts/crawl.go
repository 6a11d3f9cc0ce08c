package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleCrawlSite implements the site collection workflow.
func HandleCrawlSite(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments
		site := args["url"]
		if site == "" {
			site = "https://example.com"
		}
		goal := args["goal"]

		var sb strings.Builder

		sb.WriteString("# Crawl a Website\n\n")
		if goal != "" {
			sb.WriteString(fmt.Sprintf("Goal: %s\n\n", goal))
		}
		sb.WriteString("Crawls cost one credit per page. Find the pages you need before crawling.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Map the site** - `firecrawl_map` lists URLs without scraping them\n")
		sb.WriteString("   - Pass `search` to rank links by relevance to the goal\n")
		sb.WriteString("2. **Pick paths** - Turn the useful URL patterns into `include_paths` regexes\n")
		sb.WriteString("3. **Crawl** - `firecrawl_crawl` waits for the job and returns every page\n")
		sb.WriteString(fmt.Sprintf("   - `limit` defaults to %d pages; `max_depth` bounds link depth\n", cfg.DefaultCrawlLimit))
		sb.WriteString("   - `only_main_content: true` strips navigation and footers\n")
		sb.WriteString("4. **Trim** - Use a jq `filter` so only the fields you need come back\n")
		sb.WriteString("   - The full output stays readable at `firecrawl://run/{run_id}` for a while\n\n")

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("firecrawl_map(items=[{url: %q, search: \"<topic>\"}], filter=\".links\")\n", site))
		sb.WriteString(fmt.Sprintf("firecrawl_crawl(items=[{url: %q, include_paths: \"docs/.*\", limit: 20, only_main_content: true}], filter=\"[.data[] | {url: .metadata.sourceURL, markdown}]\")\n", site))
		sb.WriteString("```\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **Too few pages?** Check `include_paths`; they are regexes matched against the URL path\n")
		sb.WriteString("- **Single page needed?** Use `firecrawl_scrape` instead\n")
		sb.WriteString("- **`TIMEOUT`?** Lower `limit` or split the crawl by path\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for collecting content from a website",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
