package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_scrape",
		Description: "Scrape web pages with Firecrawl. Each item is one URL with its own options; returns {run_id, node, items: [{success, data, error, code, debug}], summary}. data is the scraped document (markdown by default; set formats for html, links, screenshot). Set json_example to extract structured JSON shaped like the example. Set select to a CSS selector, XPath expression or regex (select_mode) to get the matching text in data.selected. Identical scrapes are served from a cache.",
	}, ToolScrape(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_crawl",
		Description: "Crawl websites with Firecrawl and wait for the crawl to finish. Each item is one start URL; data is {status, total, completed, creditsUsed, data: [documents]}. Use limit, max_depth and include/exclude paths to bound the crawl. Use firecrawl_map first when you only need the URL list.",
	}, ToolCrawl(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_map",
		Description: "List the URLs of websites with Firecrawl without scraping them. Each item is one site URL; data is {links: [...]}. Use search to rank links by relevance.",
	}, ToolMap(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_extract",
		Description: "Extract structured data from web pages with Firecrawl's LLM extraction. Each item takes urls (one URL, comma-separated, or a JSON array; a trailing /* covers a domain) and either a prompt (extraction_method=simple) or a schema (extraction_method=schema, from schema_definition or inferred from json_example). Set validate_result to fail items whose data does not match the schema.",
	}, ToolExtract(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_infer_schema",
		Description: "Infer a JSON Schema from an example JSON value. Every object key is required; arrays take the type of their first element; empty arrays default to string items. Use the result as schema_definition for firecrawl_extract.",
	}, ToolInferSchema())

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_validate_schema",
		Description: "Validate JSON data against a JSON Schema. Returns {valid, errors} with errors as 'path: message' lines.",
	}, ToolValidateSchema())

	AddTool(srv, &sdkmcp.Tool{
		Name:        "firecrawl_parse_urls",
		Description: "Show how a URL list parameter is parsed: a JSON array, a comma-separated list, or a single URL. Returns {urls, count}. Empty entries (e.g. from a trailing comma) are shown here but skipped by firecrawl_extract.",
	}, ToolParseURLs())
}
