package nodes

import (
	"fmt"
	"slices"
	"strings"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
	"github.com/usestring/firecrawl-mcp/pkg/urllist"
)

// Extraction methods and schema definition types for extract items.
const (
	ExtractionSimple = "simple"
	ExtractionSchema = "schema"

	SchemaFromExample = "example"
	SchemaManual      = "manual"
)

// ScrapeParams are the parameters of one scrape item.
type ScrapeParams struct {
	URL             string   `json:"url" jsonschema:"URL to scrape"`
	Formats         []string `json:"formats,omitempty" jsonschema:"Output formats: markdown (default), html, rawHtml, links, screenshot, screenshot@fullPage, json, changeTracking"`
	OnlyMainContent *bool    `json:"only_main_content,omitempty" jsonschema:"Strip headers, navs and footers"`
	IncludeTags     string   `json:"include_tags,omitempty" jsonschema:"Comma-separated or JSON array of tags/selectors to keep"`
	ExcludeTags     string   `json:"exclude_tags,omitempty" jsonschema:"Comma-separated or JSON array of tags/selectors to drop"`
	WaitFor         int      `json:"wait_for,omitempty" jsonschema:"Milliseconds to wait before scraping"`
	TimeoutMs       int      `json:"timeout_ms,omitempty" jsonschema:"Scrape timeout in milliseconds"`
	JSONExample     string   `json:"json_example,omitempty" jsonschema:"Example JSON output; its inferred schema drives json extraction"`
	JSONPrompt      string   `json:"json_prompt,omitempty" jsonschema:"Prompt for json extraction"`
	Select          string   `json:"select,omitempty" jsonschema:"CSS selector, XPath expression or regex whose matches are returned in selected"`
	SelectMode      string   `json:"select_mode,omitempty" jsonschema:"css, xpath or regex (default: xpath for path-like expressions, css otherwise)"`
	SelectMax       int      `json:"select_max,omitempty" jsonschema:"Maximum selected values (0 means all)"`
	EnableDebugLogs bool     `json:"enable_debug_logs,omitempty" jsonschema:"Include request details in the item's debug field"`
}

// CrawlParams are the parameters of one crawl item.
type CrawlParams struct {
	URL                string   `json:"url" jsonschema:"Start URL of the crawl"`
	Limit              int      `json:"limit,omitempty" jsonschema:"Maximum pages to crawl (default from DEFAULT_CRAWL_LIMIT)"`
	MaxDepth           int      `json:"max_depth,omitempty" jsonschema:"Maximum link depth from the start URL"`
	IncludePaths       string   `json:"include_paths,omitempty" jsonschema:"Comma-separated or JSON array of path regexes to include"`
	ExcludePaths       string   `json:"exclude_paths,omitempty" jsonschema:"Comma-separated or JSON array of path regexes to exclude"`
	OnlyMainContent    bool     `json:"only_main_content,omitempty" jsonschema:"Strip headers, navs and footers from each page"`
	IncludeTags        string   `json:"include_tags,omitempty" jsonschema:"Comma-separated or JSON array of tags/selectors to keep"`
	ExcludeTags        string   `json:"exclude_tags,omitempty" jsonschema:"Comma-separated or JSON array of tags/selectors to drop"`
	Formats            []string `json:"formats,omitempty" jsonschema:"Output formats per page (default markdown)"`
	AllowExternalLinks bool     `json:"allow_external_links,omitempty" jsonschema:"Follow links to other domains"`
	IgnoreSitemap      bool     `json:"ignore_sitemap,omitempty" jsonschema:"Do not seed the crawl from the sitemap"`
	EnableDebugLogs    bool     `json:"enable_debug_logs,omitempty" jsonschema:"Include request details in the item's debug field"`
}

// MapParams are the parameters of one map item.
type MapParams struct {
	URL               string `json:"url" jsonschema:"Site URL to map"`
	Search            string `json:"search,omitempty" jsonschema:"Only return links relevant to this search term"`
	IncludeSubdomains bool   `json:"include_subdomains,omitempty" jsonschema:"Include links on subdomains"`
	IgnoreSitemap     bool   `json:"ignore_sitemap,omitempty" jsonschema:"Do not use the sitemap"`
	Limit             int    `json:"limit,omitempty" jsonschema:"Maximum links to return"`
	EnableDebugLogs   bool   `json:"enable_debug_logs,omitempty" jsonschema:"Include request details in the item's debug field"`
}

// ExtractParams are the parameters of one extract item.
type ExtractParams struct {
	URLs                 string `json:"urls" jsonschema:"URLs to extract from: one URL, comma-separated, or a JSON array. A trailing /* covers a whole domain"`
	ExtractionMethod     string `json:"extraction_method,omitempty" jsonschema:"simple (prompt only, default) or schema"`
	ExtractionPrompt     string `json:"extraction_prompt,omitempty" jsonschema:"What to extract"`
	SchemaDefinitionType string `json:"schema_definition_type,omitempty" jsonschema:"For the schema method: example (infer from json_example) or manual (default, schema_definition)"`
	JSONExample          string `json:"json_example,omitempty" jsonschema:"Example of the desired output as JSON text"`
	SchemaDefinition     string `json:"schema_definition,omitempty" jsonschema:"JSON Schema of the desired output as JSON text"`
	EnableWebSearch      bool   `json:"enable_web_search,omitempty" jsonschema:"Let extraction follow links outside the given URLs"`
	ValidateResult       bool   `json:"validate_result,omitempty" jsonschema:"Fail the item when extracted data does not match the schema"`
	EnableDebugLogs      bool   `json:"enable_debug_logs,omitempty" jsonschema:"Include request details in the item's debug field"`
}

func requireURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", ErrInvalidInput("url is required")
	}
	return u, nil
}

// normalizeFormats applies the markdown default and rejects unknown formats.
func normalizeFormats(formats []string) ([]string, error) {
	if len(formats) == 0 {
		return []string{firecrawl.FormatMarkdown}, nil
	}
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.TrimSpace(f)
		if !slices.Contains(firecrawl.ValidFormats, f) {
			return nil, ErrInvalidInput(fmt.Sprintf("unsupported format %q (valid: %s)", f, strings.Join(firecrawl.ValidFormats, ", ")))
		}
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func nonNegative(name string, v int) error {
	if v < 0 {
		return ErrInvalidInput(fmt.Sprintf("%s must not be negative", name))
	}
	return nil
}

// listOrNil parses a list parameter, returning nil for an empty list.
func listOrNil(input string) []string {
	l := urllist.ParseList(input)
	if len(l) == 0 {
		return nil
	}
	return l
}
