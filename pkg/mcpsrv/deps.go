package mcpsrv

import (
	"github.com/usestring/firecrawl-mcp/internal/cache"
	"github.com/usestring/firecrawl-mcp/internal/config"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Client *firecrawl.Client
	Config *config.Config
	// Cache holds recent scrape and map responses.
	Cache *cache.ResponseCache
}
