package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "extract_structured_data",
		Description: "RECOMMENDED: Extract structured data from web pages. Guides through defining a schema from an example, running firecrawl_extract, and validating the result.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "urls",
				Description: "Pages to extract from (one URL, comma-separated, or a JSON array)",
				Required:    false,
			},
			{
				Name:        "example",
				Description: "Example of the desired output as JSON",
				Required:    false,
			},
		},
	}, HandleExtractStructuredData(cfg))

	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "crawl_site",
		Description: "Collect content from a website. Guides through mapping the site, choosing paths, crawling within limits, and trimming results with jq filters.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "url",
				Description: "Site to crawl",
				Required:    false,
			},
			{
				Name:        "goal",
				Description: "What content you need from the site",
				Required:    false,
			},
		},
	}, HandleCrawlSite(cfg))
}
