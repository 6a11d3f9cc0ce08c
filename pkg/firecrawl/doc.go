// Package firecrawl provides a Go client for the Firecrawl v1 REST API.
//
// Firecrawl turns web pages into LLM-ready data. The client covers the four
// operations the nodes in this module expose: scrape, crawl, map and extract.
//
// # Quick Start
//
//	c := firecrawl.New(os.Getenv("FIRECRAWL_API_KEY"))
//	doc, err := c.ScrapeURL(ctx, "https://example.com", &firecrawl.ScrapeOptions{
//	    Formats: []string{firecrawl.FormatMarkdown},
//	})
//
// Self-hosted deployments set the base URL:
//
//	c := firecrawl.New(key, firecrawl.WithBaseURL("http://localhost:3002"))
//
// # Asynchronous Jobs
//
// Crawl and extract are jobs on the Firecrawl side. CrawlURL and Extract start
// the job and poll its status until it reaches a terminal state, honoring
// context cancellation between polls. StartCrawl and CrawlStatus expose the
// two halves separately for callers that manage polling themselves.
//
// # Errors
//
// Non-2xx responses, and 2xx responses whose body reports success=false, are
// returned as *APIError carrying the HTTP status and the API's error message.
package firecrawl
