package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/internal/mcp/tools"
)

// AddTool registers a tool with the server after checking that the zero value
// of Out passes the JSON schema the SDK infers for it. Nil slices marshal as
// null but are inferred as arrays, which would otherwise only fail when the
// tool first returns.
//
// AddTool panics with the offending type and field when the check fails.
// Use it instead of [sdkmcp.AddTool] to get the check.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
