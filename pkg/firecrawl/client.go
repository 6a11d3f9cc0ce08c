package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the hosted Firecrawl API.
const DefaultBaseURL = "https://api.firecrawl.dev"

// DefaultPollInterval is how often asynchronous crawl and extract jobs are polled.
const DefaultPollInterval = 2 * time.Second

// ErrMissingAPIKey is returned when credentials carry no API key.
var ErrMissingAPIKey = errors.New("firecrawl API key is required")

// Client is a Firecrawl API client.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	pollInterval time.Duration
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API (self-hosted deployments).
// An empty value keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPollInterval sets the status polling interval for crawl and extract jobs.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// New creates a new Firecrawl API client.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:       apiKey,
		baseURL:      DefaultBaseURL,
		httpClient:   http.DefaultClient,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credentials identify a Firecrawl account.
type Credentials struct {
	APIKey string `json:"apiKey"`
	APIURL string `json:"apiUrl,omitempty"`
}

// Validate reports whether the credentials can be used.
func (cr Credentials) Validate() error {
	if strings.TrimSpace(cr.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Client builds an API client from the credentials. The API URL, when set,
// applies to every operation.
func (cr Credentials) Client(opts ...Option) (*Client, error) {
	if err := cr.Validate(); err != nil {
		return nil, err
	}
	all := append([]Option{WithBaseURL(cr.APIURL)}, opts...)
	return New(cr.APIKey, all...), nil
}

// get performs a GET request against an API path and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, c.baseURL+path, nil, result)
}

// getURL performs a GET against a pagination link returned by the API.
func (c *Client) getURL(ctx context.Context, rawURL string, result any) error {
	link, err := c.resolveLink(rawURL)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, link, nil, result)
}

// resolveLink resolves a link against the base URL. Links to any other
// origin are rejected so the API key is only ever sent to the base URL.
func (c *Client) resolveLink(rawURL string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", rawURL, err)
	}

	link := base.ResolveReference(ref)
	if !strings.EqualFold(link.Scheme, base.Scheme) || !strings.EqualFold(link.Host, base.Host) {
		return "", fmt.Errorf("refusing to follow link %q: not on %s", rawURL, c.baseURL)
	}
	return link.String(), nil
}

// post performs a POST request with a JSON body and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, c.baseURL+path, body, result)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body, result any) error {
	start := time.Now()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	path := req.URL.Path

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := c.parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if json.Unmarshal(data, &env) == nil && env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request was not successful"
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	slog.Debug("HTTP request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}

// parseError extracts an APIError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var env envelope
	if json.Unmarshal(body, &env) == nil && env.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// wait blocks for one poll interval or until ctx is done.
func (c *Client) wait(ctx context.Context) error {
	t := time.NewTimer(c.pollInterval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
