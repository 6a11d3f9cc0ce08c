package firecrawl

import "fmt"

// Output formats accepted by scrape and crawl.
const (
	FormatMarkdown           = "markdown"
	FormatHTML               = "html"
	FormatRawHTML            = "rawHtml"
	FormatLinks              = "links"
	FormatScreenshot         = "screenshot"
	FormatScreenshotFullPage = "screenshot@fullPage"
	FormatJSON               = "json"
	FormatChangeTracking     = "changeTracking"
)

// ValidFormats lists every format name the API accepts.
var ValidFormats = []string{
	FormatMarkdown,
	FormatHTML,
	FormatRawHTML,
	FormatLinks,
	FormatScreenshot,
	FormatScreenshotFullPage,
	FormatJSON,
	FormatChangeTracking,
}

// Job states reported by crawl and extract status endpoints.
const (
	StatusScraping   = "scraping"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// APIError represents an error response from the Firecrawl API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("firecrawl API error %d: %s", e.StatusCode, e.Message)
}

// JobError reports a crawl or extract job that ended in a non-success state.
type JobError struct {
	Kind   string // "crawl" or "extract"
	ID     string
	Status string
	Reason string
}

func (e *JobError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s job %s %s: %s", e.Kind, e.ID, e.Status, e.Reason)
	}
	return fmt.Sprintf("%s job %s %s", e.Kind, e.ID, e.Status)
}

// envelope holds the fields shared by every API response.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// Document is a single scraped page.
type Document struct {
	Markdown   string         `json:"markdown,omitempty"`
	HTML       string         `json:"html,omitempty"`
	RawHTML    string         `json:"rawHtml,omitempty"`
	Links      []string       `json:"links,omitempty"`
	Screenshot string         `json:"screenshot,omitempty"`
	JSON       any            `json:"json,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Warning    string         `json:"warning,omitempty"`
}

// SourceURL returns the metadata sourceURL, if present.
func (d *Document) SourceURL() string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata["sourceURL"].(string)
	return s
}

// JSONOptions configures LLM extraction during a scrape (the "json" format).
type JSONOptions struct {
	Schema       any    `json:"schema,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	SystemPrompt string `json:"systemPrompt,omitempty"`
}

// ScrapeOptions are the request parameters for a scrape.
type ScrapeOptions struct {
	Formats         []string     `json:"formats,omitempty"`
	OnlyMainContent *bool        `json:"onlyMainContent,omitempty"`
	IncludeTags     []string     `json:"includeTags,omitempty"`
	ExcludeTags     []string     `json:"excludeTags,omitempty"`
	WaitFor         int          `json:"waitFor,omitempty"`
	Timeout         int          `json:"timeout,omitempty"`
	JSONOptions     *JSONOptions `json:"jsonOptions,omitempty"`
}

type scrapeRequest struct {
	URL string `json:"url"`
	*ScrapeOptions
}

type scrapeResponse struct {
	Data *Document `json:"data"`
}

// CrawlOptions are the request parameters for a crawl.
type CrawlOptions struct {
	Limit              int            `json:"limit,omitempty"`
	MaxDepth           int            `json:"maxDepth,omitempty"`
	IncludePaths       []string       `json:"includePaths,omitempty"`
	ExcludePaths       []string       `json:"excludePaths,omitempty"`
	AllowExternalLinks bool           `json:"allowExternalLinks,omitempty"`
	IgnoreSitemap      bool           `json:"ignoreSitemap,omitempty"`
	ScrapeOptions      *ScrapeOptions `json:"scrapeOptions,omitempty"`
}

type crawlRequest struct {
	URL string `json:"url"`
	*CrawlOptions
}

// CrawlJob is the handle returned when a crawl is started.
type CrawlJob struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// CrawlStatus is the state of a crawl job, with the pages scraped so far.
type CrawlStatus struct {
	ID          string      `json:"id,omitempty"`
	Status      string      `json:"status"`
	Total       int         `json:"total"`
	Completed   int         `json:"completed"`
	CreditsUsed int         `json:"creditsUsed"`
	ExpiresAt   string      `json:"expiresAt,omitempty"`
	Next        string      `json:"next,omitempty"`
	Data        []*Document `json:"data"`
}

// MapOptions are the request parameters for a map.
type MapOptions struct {
	Search            string `json:"search,omitempty"`
	IgnoreSitemap     bool   `json:"ignoreSitemap,omitempty"`
	IncludeSubdomains bool   `json:"includeSubdomains,omitempty"`
	Limit             int    `json:"limit,omitempty"`
}

type mapRequest struct {
	URL string `json:"url"`
	*MapOptions
}

// MapResult lists the URLs discovered on a site.
type MapResult struct {
	Links []string `json:"links"`
}

// ExtractOptions are the request parameters for an extract.
type ExtractOptions struct {
	Prompt          string `json:"prompt,omitempty"`
	Schema          any    `json:"schema,omitempty"`
	EnableWebSearch bool   `json:"enableWebSearch,omitempty"`
}

type extractRequest struct {
	URLs []string `json:"urls"`
	*ExtractOptions
}

type extractJob struct {
	ID string `json:"id"`
}

// ExtractResult is a finished extract job.
type ExtractResult struct {
	ID        string `json:"id,omitempty"`
	Status    string `json:"status"`
	Data      any    `json:"data"`
	ExpiresAt string `json:"expiresAt,omitempty"`
	Error     string `json:"error,omitempty"`
}
