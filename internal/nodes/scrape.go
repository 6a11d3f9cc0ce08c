package nodes

import (
	"context"
	"fmt"
	"slices"

	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
	"github.com/usestring/firecrawl-mcp/pkg/schemagen"
	"github.com/usestring/firecrawl-mcp/pkg/textquery"
)

// Scrape scrapes a single URL per item.
type Scrape struct {
	deps *Deps
}

// NewScrape creates a scrape node.
func NewScrape(d *Deps) *Scrape {
	return &Scrape{deps: d}
}

func (n *Scrape) Name() string { return NodeScrape }

// ScrapeResult is a scraped document plus the text picked out by the
// item's select expression.
type ScrapeResult struct {
	*firecrawl.Document
	Selected []string `json:"selected"`
}

type scrapeCacheKey struct {
	URL     string                   `json:"url"`
	Options *firecrawl.ScrapeOptions `json:"options"`
}

// Execute scrapes p.URL. Identical requests are served from the response cache.
func (n *Scrape) Execute(ctx context.Context, p ScrapeParams) (*Output, error) {
	url, opts, sel, err := p.request()
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"url":     url,
		"options": opts,
	}
	if sel != nil {
		fields["select"] = sel.String()
		fields["select_mode"] = sel.Mode()
	}
	debug := debugInfo(p.EnableDebugLogs, n.Name(), fields)

	var doc *firecrawl.Document
	key, cacheable := cacheKey(n.Name(), scrapeCacheKey{URL: url, Options: opts})
	if cacheable {
		if v, ok := n.deps.Cache.Get(key); ok {
			if debug != nil {
				debug["cache_hit"] = true
			}
			doc, _ = v.(*firecrawl.Document)
		}
	}
	if doc == nil {
		doc, err = n.deps.Client.ScrapeURL(ctx, url, opts)
		if err != nil {
			return nil, WrapFirecrawlError(err)
		}
		if cacheable {
			n.deps.Cache.Put(key, doc)
		}
	}

	if sel == nil {
		return &Output{Data: doc, Debug: debug}, nil
	}
	res, err := sel.Run(selectSource(doc, sel.Mode()), p.SelectMax)
	if err != nil {
		return nil, &CodedError{Code: ErrCodeInvalidInput, Message: fmt.Sprintf("select: %v", err), Cause: err}
	}
	return &Output{Data: &ScrapeResult{Document: doc, Selected: res.Values}, Debug: debug}, nil
}

// selectSource picks the document content a selection runs against. Regexes
// prefer markdown; css and xpath need markup.
func selectSource(doc *firecrawl.Document, mode string) []byte {
	if mode == textquery.ModeRegex && doc.Markdown != "" {
		return []byte(doc.Markdown)
	}
	if doc.RawHTML != "" {
		return []byte(doc.RawHTML)
	}
	if doc.HTML != "" {
		return []byte(doc.HTML)
	}
	return []byte(doc.Markdown)
}

// request validates the params and builds the API request options.
func (p ScrapeParams) request() (string, *firecrawl.ScrapeOptions, *textquery.Query, error) {
	url, err := requireURL(p.URL)
	if err != nil {
		return "", nil, nil, err
	}
	formats, err := normalizeFormats(p.Formats)
	if err != nil {
		return "", nil, nil, err
	}
	if err := nonNegative("wait_for", p.WaitFor); err != nil {
		return "", nil, nil, err
	}
	if err := nonNegative("timeout_ms", p.TimeoutMs); err != nil {
		return "", nil, nil, err
	}
	if err := nonNegative("select_max", p.SelectMax); err != nil {
		return "", nil, nil, err
	}

	opts := &firecrawl.ScrapeOptions{
		Formats:         formats,
		OnlyMainContent: p.OnlyMainContent,
		IncludeTags:     listOrNil(p.IncludeTags),
		ExcludeTags:     listOrNil(p.ExcludeTags),
		WaitFor:         p.WaitFor,
		Timeout:         p.TimeoutMs,
	}

	if p.JSONExample != "" {
		schema, err := schemagen.InferJSON([]byte(p.JSONExample))
		if err != nil {
			return "", nil, nil, &CodedError{
				Code:    ErrCodeInvalidInput,
				Message: fmt.Sprintf("Invalid schema: %v", err),
				Cause:   err,
			}
		}
		opts.JSONOptions = &firecrawl.JSONOptions{Schema: schema, Prompt: p.JSONPrompt}
		if !slices.Contains(opts.Formats, firecrawl.FormatJSON) {
			opts.Formats = append(opts.Formats, firecrawl.FormatJSON)
		}
	} else if p.JSONPrompt != "" {
		opts.JSONOptions = &firecrawl.JSONOptions{Prompt: p.JSONPrompt}
		if !slices.Contains(opts.Formats, firecrawl.FormatJSON) {
			opts.Formats = append(opts.Formats, firecrawl.FormatJSON)
		}
	}

	if slices.Contains(opts.Formats, firecrawl.FormatJSON) && opts.JSONOptions == nil {
		return "", nil, nil, ErrInvalidInput("json format requires json_example or json_prompt")
	}

	var sel *textquery.Query
	if p.Select != "" {
		sel, err = textquery.Compile(p.SelectMode, p.Select)
		if err != nil {
			return "", nil, nil, ErrInvalidInput(fmt.Sprintf("select: %v", err))
		}
		needsMarkup := sel.Mode() != textquery.ModeRegex
		if needsMarkup && !slices.Contains(opts.Formats, firecrawl.FormatHTML) && !slices.Contains(opts.Formats, firecrawl.FormatRawHTML) {
			opts.Formats = append(opts.Formats, firecrawl.FormatHTML)
		}
	}

	return url, opts, sel, nil
}
