// Package tools contains MCP tool implementations for Firecrawl.
package tools

import (
	"github.com/usestring/firecrawl-mcp/internal/cache"
	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/internal/nodes"
	"github.com/usestring/firecrawl-mcp/pkg/types"
)

// MimeJSON is the MIME type of JSON resource contents.
const MimeJSON = "application/json"

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Nodes  *nodes.Deps
	Config *config.Config
	// Runs keeps recent batch outputs by run ID for the run resource.
	Runs *cache.ResponseCache
}

// StoreRun remembers a batch output so it can be read back as a resource.
// Items are stored as the node returned them, before any filter.
func (d *Deps) StoreRun(out *types.BatchOutput) {
	if out == nil {
		return
	}
	d.Runs.Put(out.RunID, out.WithoutFilter())
}

// LookupRun returns a remembered batch output.
func (d *Deps) LookupRun(runID string) (*types.BatchOutput, bool) {
	v, ok := d.Runs.Get(runID)
	if !ok {
		return nil, false
	}
	out, ok := v.(*types.BatchOutput)
	return out, ok
}
