package mcpsrv

import (
	"context"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/firecrawl-mcp/internal/config"
)

// extension registers something on the SDK server once Deps exist.
type extension func(srv *mcp.Server, deps *Deps)

type serverConfig struct {
	config *config.Config

	// Overrides applied on top of config.
	logLevel       string
	logFile        string
	continueOnFail *bool

	disableBuiltinTools   bool
	disableBuiltinPrompts bool

	// Registered in option order after the builtins.
	extensions []extension
}

// Option configures the server.
type Option func(*serverConfig)

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) {
		cfg.logLevel = level
	}
}

// WithLogFile overrides LOG_FILE. Logs rotate with the configured size and
// age limits; Close flushes the file.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) {
		cfg.logFile = path
	}
}

// WithConfig replaces the configuration loaded from the environment.
// WithLogLevel, WithLogFile and WithContinueOnFail still apply on top.
func WithConfig(c *config.Config) Option {
	return func(cfg *serverConfig) {
		if c != nil {
			cfg.config = c
		}
	}
}

// WithContinueOnFail sets the default failure handling of node tools.
// Callers can still override it per call with continue_on_fail.
func WithContinueOnFail(v bool) Option {
	return func(cfg *serverConfig) {
		cfg.continueOnFail = &v
	}
}

// WithoutBuiltinTools disables the firecrawl_* tools and the run resource.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinTools = true
	}
}

// WithoutBuiltinPrompts disables the extract_structured_data and crawl_site prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) {
		cfg.disableBuiltinPrompts = true
	}
}

// WithTool registers a tool that needs nothing from the server. The output
// type is checked like the builtin tools: its zero value must satisfy its
// own schema, or NewServer panics.
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "normalize_url", Description: "Trim and lowercase a URL"},
//	    func(ctx context.Context, req *mcp.CallToolRequest, in URLInput) (*mcp.CallToolResult, URLOutput, error) {
//	        return nil, URLOutput{URL: strings.ToLower(strings.TrimSpace(in.URL))}, nil
//	    })
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			AddTool(srv, tool, handler)
		})
	}
}

// WithDepsTool registers a tool built from Deps, for tools that call
// Firecrawl or share the response cache. See examples/site-search.
//
//	mcpsrv.WithDepsTool(&mcp.Tool{Name: "count_links", Description: "Count the links on a site"},
//	    func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, SiteInput) (*mcp.CallToolResult, CountOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in SiteInput) (*mcp.CallToolResult, CountOutput, error) {
//	            res, err := d.Client.MapURL(ctx, in.URL, nil)
//	            if err != nil {
//	                return nil, CountOutput{}, err
//	            }
//	            return nil, CountOutput{Count: len(res.Links)}, nil
//	        }
//	    })
func WithDepsTool[In, Out any](tool *mcp.Tool, builder func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, deps *Deps) {
			AddTool(srv, tool, builder(deps))
		})
	}
}

// WithPrompt registers a prompt next to the builtin ones, e.g. a house
// workflow for a particular site.
func WithPrompt(prompt *mcp.Prompt, handler mcp.PromptHandler) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddPrompt(prompt, handler)
		})
	}
}

// WithResourceTemplate registers a resource template. Templates under the
// firecrawl:// scheme must not use the run/ path, which the builtin run
// resource owns.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler mcp.ResourceHandler) Option {
	return func(cfg *serverConfig) {
		cfg.extensions = append(cfg.extensions, func(srv *mcp.Server, _ *Deps) {
			srv.AddResourceTemplate(template, handler)
		})
	}
}
