package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/internal/mcp/tools"
	"github.com/usestring/firecrawl-mcp/internal/nodes"
)

// Resource URI scheme: firecrawl://
// Supported URIs:
//   firecrawl://run/{run_id}
const resourceScheme = "firecrawl://"

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "run/{run_id}",
		Name:        "Batch Run",
		Description: "Full output of a recent scrape, crawl, map or extract call, by run_id. Only the most recent runs are kept (RESULT_CACHE_MAX_ITEMS). Use it to re-read unfiltered results without calling Firecrawl again.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceRun)
}

func (s *Server) handleResourceRun(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	out, ok := s.deps.LookupRun(params["run_id"])
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	return toResourceResult(req.Params.URI, out)
}

// parseResourceURI extracts parameters from a firecrawl:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, nodes.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	params := make(map[string]string)

	switch parts[0] {
	case "run":
		if len(parts) < 2 || parts[1] == "" {
			return nil, nodes.ErrInvalidInput("run URI requires a run ID")
		}
		params["run_id"] = parts[1]
	case "":
		return nil, nodes.ErrInvalidInput("empty resource path")
	default:
		return nil, nodes.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", parts[0]))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
