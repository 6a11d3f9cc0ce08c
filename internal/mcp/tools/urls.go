package tools

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/pkg/urllist"
)

// ParseURLsInput is the input for firecrawl_parse_urls.
type ParseURLsInput struct {
	Input string `json:"input" jsonschema:"One URL, a comma-separated list, or a JSON array of URLs"`
}

// ParseURLsOutput is the output for firecrawl_parse_urls.
type ParseURLsOutput struct {
	URLs  []string `json:"urls,omitzero"`
	Count int      `json:"count"`
}

// ToolParseURLs shows how a URL list parameter is parsed. Entries are
// returned exactly as parsed, including empty ones; extract drops those.
func ToolParseURLs() sdkmcp.ToolHandlerFor[ParseURLsInput, ParseURLsOutput] {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ParseURLsInput) (*sdkmcp.CallToolResult, ParseURLsOutput, error) {
		urls := urllist.Parse(input.Input)
		return nil, ParseURLsOutput{URLs: urls, Count: len(urls)}, nil
	}
}

func decodeJSON(text string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}
