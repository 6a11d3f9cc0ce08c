package nodes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/firecrawl-mcp/internal/cache"
	"github.com/usestring/firecrawl-mcp/pkg/firecrawl"
)

// fakeFirecrawl serves canned responses for every endpoint the nodes call
// and records the request bodies it receives.
type fakeFirecrawl struct {
	mu          sync.Mutex
	bodies      map[string][]map[string]any
	extractData string
	scrapeCode  int
}

func (f *fakeFirecrawl) record(path string, r *http.Request) map[string]any {
	b, _ := io.ReadAll(r.Body)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[path] = append(f.bodies[path], m)
	return m
}

func (f *fakeFirecrawl) calls(path string) []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[path]
}

func (f *fakeFirecrawl) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/scrape":
		body := f.record(r.URL.Path, r)
		if f.scrapeCode != 0 {
			w.WriteHeader(f.scrapeCode)
			w.Write([]byte(`{"success":false,"error":"scrape refused"}`))
			return
		}
		url, _ := body["url"].(string)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"markdown": "# " + url + "\n\nPrice: $12",
				"html":     "<html><body><h1>" + url + "</h1><ul><li>One</li><li>Two</li></ul></body></html>",
				"metadata": map[string]any{"sourceURL": url, "statusCode": 200},
			},
		})
	case r.Method == http.MethodPost && r.URL.Path == "/v1/map":
		f.record(r.URL.Path, r)
		w.Write([]byte(`{"success":true,"links":["https://example.com/a","https://example.com/b"]}`))
	case r.Method == http.MethodPost && r.URL.Path == "/v1/crawl":
		f.record(r.URL.Path, r)
		w.Write([]byte(`{"success":true,"id":"crawl-1"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/v1/crawl/crawl-1":
		w.Write([]byte(`{"status":"completed","total":1,"completed":1,"data":[{"markdown":"page"}]}`))
	case r.Method == http.MethodPost && r.URL.Path == "/v1/extract":
		f.record(r.URL.Path, r)
		w.Write([]byte(`{"success":true,"id":"ext-1"}`))
	case r.Method == http.MethodGet && r.URL.Path == "/v1/extract/ext-1":
		data := f.extractData
		if data == "" {
			data = `{"title":"Example"}`
		}
		w.Write([]byte(`{"success":true,"status":"completed","data":` + data + `}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestDeps(t *testing.T, fake *fakeFirecrawl, cacheSize int) *Deps {
	t.Helper()
	fake.bodies = make(map[string][]map[string]any)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := cache.NewResponseCache(cacheSize)
	require.NoError(t, err)

	return &Deps{
		Client:            firecrawl.New("test-key", firecrawl.WithBaseURL(srv.URL), firecrawl.WithPollInterval(time.Millisecond)),
		Cache:             c,
		DefaultCrawlLimit: 25,
	}
}

func TestScrape_Execute(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)

	out, err := NewScrape(d).Execute(context.Background(), ScrapeParams{URL: " https://example.com "})
	require.NoError(t, err)

	doc, ok := out.Data.(*firecrawl.Document)
	require.True(t, ok)
	assert.Equal(t, "# https://example.com\n\nPrice: $12", doc.Markdown)
	assert.Nil(t, out.Debug)

	calls := fake.calls("/v1/scrape")
	require.Len(t, calls, 1)
	assert.Equal(t, "https://example.com", calls[0]["url"])
	assert.Equal(t, []any{"markdown"}, calls[0]["formats"])
}

func TestScrape_JSONExampleAddsInferredSchema(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)

	_, err := NewScrape(d).Execute(context.Background(), ScrapeParams{
		URL:         "https://example.com",
		JSONExample: `{"title":"x","price":1}`,
		JSONPrompt:  "product details",
		IncludeTags: "main, article",
	})
	require.NoError(t, err)

	body := fake.calls("/v1/scrape")[0]
	assert.Equal(t, []any{"markdown", "json"}, body["formats"])
	assert.Equal(t, []any{"main", "article"}, body["includeTags"])

	jsonOpts := body["jsonOptions"].(map[string]any)
	assert.Equal(t, "product details", jsonOpts["prompt"])
	schema := jsonOpts["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"title", "price"}, schema["required"])
}

func TestScrape_Validation(t *testing.T) {
	d := newTestDeps(t, &fakeFirecrawl{}, 0)
	n := NewScrape(d)

	tests := []struct {
		name   string
		params ScrapeParams
		want   string
	}{
		{"missing url", ScrapeParams{URL: "  "}, "url is required"},
		{"bad format", ScrapeParams{URL: "https://a.test", Formats: []string{"pdf"}}, `unsupported format "pdf"`},
		{"json without options", ScrapeParams{URL: "https://a.test", Formats: []string{"json"}}, "json format requires"},
		{"bad example", ScrapeParams{URL: "https://a.test", JSONExample: "{nope"}, "Invalid schema"},
		{"negative wait", ScrapeParams{URL: "https://a.test", WaitFor: -1}, "wait_for must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Execute(context.Background(), tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
		})
	}
}

func TestScrape_CachesIdenticalRequests(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 8)
	n := NewScrape(d)

	_, err := n.Execute(context.Background(), ScrapeParams{URL: "https://example.com"})
	require.NoError(t, err)
	out, err := n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", EnableDebugLogs: true})
	require.NoError(t, err)

	assert.Len(t, fake.calls("/v1/scrape"), 1)
	assert.Equal(t, true, out.Debug["cache_hit"])
	assert.Equal(t, 1, d.Cache.Len())

	_, err = n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", Formats: []string{"html"}})
	require.NoError(t, err)
	assert.Len(t, fake.calls("/v1/scrape"), 2)
}

func TestScrape_APIErrorIsCoded(t *testing.T) {
	fake := &fakeFirecrawl{scrapeCode: http.StatusTooManyRequests}
	d := newTestDeps(t, fake, 0)

	_, err := NewScrape(d).Execute(context.Background(), ScrapeParams{URL: "https://example.com"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeRateLimited, ErrorCode(err))
	assert.Contains(t, err.Error(), "scrape refused")

	var apiErr *firecrawl.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestMap_Execute(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 8)
	n := NewMap(d)

	out, err := n.Execute(context.Background(), MapParams{URL: "https://example.com", Search: "docs", EnableDebugLogs: true})
	require.NoError(t, err)

	res := out.Data.(*firecrawl.MapResult)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, res.Links)
	assert.Equal(t, "https://example.com", out.Debug["url"])

	body := fake.calls("/v1/map")[0]
	assert.Equal(t, "docs", body["search"])

	_, err = n.Execute(context.Background(), MapParams{URL: "https://example.com", Search: "docs"})
	require.NoError(t, err)
	assert.Len(t, fake.calls("/v1/map"), 1)

	_, err = n.Execute(context.Background(), MapParams{})
	assert.EqualError(t, err, "url is required")
}

func TestCrawl_Execute(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)

	out, err := NewCrawl(d).Execute(context.Background(), CrawlParams{
		URL:             "https://example.com",
		ExcludePaths:    `["blog/.*", "tag/.*"]`,
		IncludeTags:     "main,",
		OnlyMainContent: true,
	})
	require.NoError(t, err)

	status := out.Data.(*firecrawl.CrawlStatus)
	assert.Equal(t, firecrawl.StatusCompleted, status.Status)
	require.Len(t, status.Data, 1)

	body := fake.calls("/v1/crawl")[0]
	assert.Equal(t, float64(25), body["limit"])
	assert.Equal(t, []any{"blog/.*", "tag/.*"}, body["excludePaths"])
	scrape := body["scrapeOptions"].(map[string]any)
	assert.Equal(t, []any{"main"}, scrape["includeTags"])
	assert.Equal(t, true, scrape["onlyMainContent"])
	assert.Equal(t, []any{"markdown"}, scrape["formats"])
}

func TestCrawl_DefaultLimitFallback(t *testing.T) {
	_, opts, err := CrawlParams{URL: "https://a.test"}.request(0)
	require.NoError(t, err)
	assert.Equal(t, 50, opts.Limit)

	_, opts, err = CrawlParams{URL: "https://a.test", Limit: 3}.request(10)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Limit)
	assert.Nil(t, opts.ScrapeOptions.OnlyMainContent)
}

func TestExtract_Simple(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)

	out, err := NewExtract(d).Execute(context.Background(), ExtractParams{
		URLs:             `["https://a.test", "https://b.test/*"]`,
		ExtractionPrompt: "get the title",
		EnableDebugLogs:  true,
	})
	require.NoError(t, err)

	res := out.Data.(*firecrawl.ExtractResult)
	assert.Equal(t, map[string]any{"title": "Example"}, res.Data)
	assert.Equal(t, []string{"https://a.test", "https://b.test/*"}, out.Debug["urls"])

	body := fake.calls("/v1/extract")[0]
	assert.Equal(t, []any{"https://a.test", "https://b.test/*"}, body["urls"])
	assert.Equal(t, "get the title", body["prompt"])
	assert.NotContains(t, body, "schema")
}

func TestExtract_SchemaFromExample(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)

	_, err := NewExtract(d).Execute(context.Background(), ExtractParams{
		URLs:                 "https://a.test",
		ExtractionMethod:     ExtractionSchema,
		SchemaDefinitionType: SchemaFromExample,
		JSONExample:          `{"items":[{"id":1}]}`,
		ValidateResult:       false,
	})
	require.NoError(t, err)

	schema := fake.calls("/v1/extract")[0]["schema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	items := schema["properties"].(map[string]any)["items"].(map[string]any)
	assert.Equal(t, "array", items["type"])
	assert.Equal(t, []any{"id"}, items["items"].(map[string]any)["required"])
}

func TestExtract_ValidateResult(t *testing.T) {
	manual := `{"type":"object","properties":{"title":{"type":"string"}},"required":["title"]}`

	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 0)
	params := ExtractParams{
		URLs:             "https://a.test",
		ExtractionMethod: ExtractionSchema,
		SchemaDefinition: manual,
		ValidateResult:   true,
	}

	_, err := NewExtract(d).Execute(context.Background(), params)
	require.NoError(t, err)

	fake.extractData = `{"title":7}`
	_, err = NewExtract(d).Execute(context.Background(), params)
	require.Error(t, err)
	assert.Equal(t, ErrCodeSchemaMismatch, ErrorCode(err))
	assert.Contains(t, err.Error(), "/title")
}

func TestExtract_Validation(t *testing.T) {
	d := newTestDeps(t, &fakeFirecrawl{}, 0)
	n := NewExtract(d)

	tests := []struct {
		name   string
		params ExtractParams
		want   string
	}{
		{"no urls", ExtractParams{URLs: ""}, "No valid URLs provided"},
		{"only separators", ExtractParams{URLs: " , ,"}, "No valid URLs provided"},
		{"empty json array", ExtractParams{URLs: "[]"}, "No valid URLs provided"},
		{"bad method", ExtractParams{URLs: "https://a.test", ExtractionMethod: "magic"}, "extraction_method"},
		{"malformed manual schema", ExtractParams{URLs: "https://a.test", ExtractionMethod: "schema", SchemaDefinition: "{"}, "Invalid schema"},
		{"uncompilable schema", ExtractParams{URLs: "https://a.test", ExtractionMethod: "schema", SchemaDefinition: `{"type":5}`}, "Invalid schema"},
		{"missing example", ExtractParams{URLs: "https://a.test", ExtractionMethod: "schema", SchemaDefinitionType: "example"}, "Invalid schema: json_example is required"},
		{"bad definition type", ExtractParams{URLs: "https://a.test", ExtractionMethod: "schema", SchemaDefinitionType: "guess"}, "schema_definition_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Execute(context.Background(), tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
		})
	}
}

func TestScrape_Select(t *testing.T) {
	fake := &fakeFirecrawl{}
	d := newTestDeps(t, fake, 16)
	n := NewScrape(d)

	out, err := n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", Select: "li"})
	require.NoError(t, err)
	res, ok := out.Data.(*ScrapeResult)
	require.True(t, ok)
	assert.Equal(t, []string{"One", "Two"}, res.Selected)
	assert.Contains(t, res.Markdown, "Price")

	calls := fake.calls("/v1/scrape")
	require.Len(t, calls, 1)
	assert.Equal(t, []any{"markdown", "html"}, calls[0]["formats"])

	// Same request, different selector: served from cache.
	out, err = n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", Select: "//li[2]", SelectMax: 1, Formats: []string{"markdown", "html"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Two"}, out.Data.(*ScrapeResult).Selected)
	assert.Len(t, fake.calls("/v1/scrape"), 1)

	out, err = n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", Select: `\$(\d+)`, SelectMode: "regex"})
	require.NoError(t, err)
	assert.Equal(t, []string{"12"}, out.Data.(*ScrapeResult).Selected)

	_, err = n.Execute(context.Background(), ScrapeParams{URL: "https://example.com", Select: "div[", SelectMode: "css"})
	assert.Equal(t, ErrCodeInvalidInput, ErrorCode(err))
	assert.ErrorContains(t, err, "invalid CSS selector")
}
