/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package rest is the HTTP transport shared by every Bandwidth resource
// client. A Client carries one set of resolved credentials, a base endpoint
// and a body format (JSON for the telephony API, XML for the dashboard API).
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the Catapult telephony API endpoint.
const DefaultBaseURL = "https://api.catapult.inetwork.com/v1/"

const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"

	// RequestIDHeader carries a per-request UUID for support debugging.
	RequestIDHeader = "X-Request-Id"
)

// Client is the Bandwidth REST client handle
type Client struct {
	// HTTP client used to communicate with the API
	httpClient *http.Client

	// Base URL for API requests
	BaseURL *url.URL

	// principalID is the user id (telephony) or account id (dashboard)
	principalID string

	// username and password are sent as HTTP basic auth
	username string
	password string

	// Configuration for the client
	Config *Config

	// Logger for SDK operations
	logger hclog.Logger
}

// PrincipalID returns the user id or account id the client acts for.
func (c *Client) PrincipalID() string {
	return c.principalID
}

// BasicAuth returns the token/secret (or username/password) pair.
func (c *Client) BasicAuth() (string, string) {
	return c.username, c.password
}

// Markup reports whether request and response bodies are XML.
func (c *Client) Markup() bool {
	return c.Config.Markup
}

// GetHTTPClient returns the HTTP client used for API requests
func (c *Client) GetHTTPClient() *http.Client {
	return c.httpClient
}

// GetLogger returns the logger used by the SDK.
func (c *Client) GetLogger() hclog.Logger {
	return c.logger
}

// Config holds the configuration for a REST client
type Config struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Markup switches request and response bodies from JSON to XML.
	Markup bool

	// Timeout for API requests
	Timeout time.Duration

	// Default headers to include in API requests
	DefaultHeaders map[string]string

	// Custom HTTP client to use instead of the default one
	// If nil, a default client will be created with the specified Timeout
	HttpClient *http.Client

	// MaxRetries is the maximum number of retries for transient errors (429, 502, 503, 504).
	// Set to 0 to disable retries. Default: 3.
	MaxRetries int

	// RetryBaseDelay is the initial delay between retries. Default: 1s.
	// Subsequent retries use exponential backoff (delay * 2^attempt).
	RetryBaseDelay time.Duration

	// Logger is the logger for SDK operations. If nil, logging is disabled.
	Logger hclog.Logger
}

// DefaultConfig returns a default configuration for the telephony API
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		Timeout:        30 * time.Second,
		DefaultHeaders: make(map[string]string),
		HttpClient:     nil,
		MaxRetries:     3,
		RetryBaseDelay: 1 * time.Second,
	}
}

// NewClient creates a new REST client for principalID authenticating with
// username and password.
func NewClient(principalID, username, password string, config *Config) (*Client, error) {
	if principalID == "" {
		return nil, fmt.Errorf("principal id cannot be empty")
	}

	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	baseURL, err := url.Parse(strings.TrimSuffix(config.BaseURL, "/"))
	if err != nil {
		return nil, err
	}

	// Create HTTP client - either use the provided custom client or create a default one
	httpClient := config.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	client := &Client{
		httpClient:  httpClient,
		BaseURL:     baseURL,
		principalID: principalID,
		username:    username,
		password:    password,
		logger:      logger,
		Config:      config,
	}

	return client, nil
}

// Request performs an HTTP request to the API with automatic retry
// for transient errors (429, 502, 503, 504).
// The caller is responsible for closing the response body when done.
func (c *Client) Request(method, path string, params url.Values, body interface{}) (*http.Response, error) {
	return c.RequestWithRetry(context.Background(), method, path, params, body)
}

// RequestWithContext performs a single HTTP request to the API with the given context.
// The caller is responsible for closing the response body when done.
func (c *Client) RequestWithContext(ctx context.Context, method, path string, params url.Values, body interface{}) (*http.Response, error) {
	u, err := url.Parse(c.BaseURL.String() + "/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, err
	}

	if params != nil {
		u.RawQuery = params.Encode()
	}

	return c.do(ctx, method, u.String(), body)
}

// RequestWithRetry performs an HTTP request with automatic retry for transient errors.
// It retries on HTTP 429 (Too Many Requests, respecting Retry-After header) and
// transient server errors (502, 503, 504) using exponential backoff.
// The caller is responsible for closing the response body when done.
func (c *Client) RequestWithRetry(ctx context.Context, method, path string, params url.Values, body interface{}) (*http.Response, error) {
	return c.retry(ctx, func() (*http.Response, error) {
		return c.RequestWithContext(ctx, method, path, params, body)
	})
}

// RequestURL performs an HTTP request to a full URL (not relative to BaseURL).
// This is used for pagination where Link headers contain absolute URLs.
func (c *Client) RequestURL(ctx context.Context, method, fullURL string, body interface{}) (*http.Response, error) {
	return c.retry(ctx, func() (*http.Response, error) {
		return c.do(ctx, method, fullURL, body)
	})
}

func (c *Client) retry(ctx context.Context, attemptFn func() (*http.Response, error)) (*http.Response, error) {
	maxRetries := c.Config.MaxRetries
	baseDelay := c.Config.RetryBaseDelay
	if baseDelay == 0 {
		baseDelay = 1 * time.Second
	}

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err = attemptFn()
		if err != nil {
			return nil, err
		}

		if !isRetryableStatus(resp.StatusCode) || attempt == maxRetries {
			return resp, nil
		}

		delay := retryDelay(resp, baseDelay, attempt)
		c.logger.Debug("retrying request", "status", resp.StatusCode, "attempt", attempt+1, "delay", delay)

		// Close the response body before retrying
		resp.Body.Close()

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return resp, err
}

// do performs a single HTTP request to a full URL.
func (c *Client) do(ctx context.Context, method, fullURL string, body interface{}) (*http.Response, error) {
	contentType := contentTypeJSON
	if c.Config.Markup {
		contentType = contentTypeXML
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := c.encode(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	// Add default headers
	for k, v := range c.Config.DefaultHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Trace("sending request", "method", method, "url", fullURL, "request_id", req.Header.Get(RequestIDHeader))
	return c.httpClient.Do(req)
}

func (c *Client) encode(body interface{}) ([]byte, error) {
	if c.Config.Markup {
		return xml.Marshal(body)
	}
	return json.Marshal(body)
}

// isRetryableStatus returns true for HTTP status codes that should be retried.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

// retryDelay calculates the delay before the next retry attempt.
// For 429 responses, it respects the Retry-After header if present.
// Otherwise, it uses exponential backoff: baseDelay * 2^attempt.
func retryDelay(resp *http.Response, baseDelay time.Duration, attempt int) time.Duration {
	if resp.StatusCode == http.StatusTooManyRequests {
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
				return time.Duration(seconds) * time.Second
			}
		}
	}
	return baseDelay * (1 << uint(attempt))
}

// isXML reports whether a response declares an XML body.
func isXML(resp *http.Response) bool {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == contentTypeXML || mediaType == "text/xml"
}

// ParseResponse parses an HTTP response into the given interface. The body
// is decoded as XML or JSON according to the response Content-Type.
func ParseResponse(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return NewAPIError(resp, body)
	}

	if v == nil || len(body) == 0 {
		return nil
	}
	if isXML(resp) {
		return xml.Unmarshal(body, v)
	}
	return json.Unmarshal(body, v)
}

// Page is one page of a list response. Catapult list endpoints return a bare
// JSON array and advertise neighbouring pages through RFC 5988 Link headers.
type Page struct {
	Items    []json.RawMessage
	NextPage string
	PrevPage string
	HasNext  bool
	HasPrev  bool
	Client   *Client
}

// NewPage creates a new Page from an HTTP response.
func NewPage(resp *http.Response, client *Client) (*Page, error) {
	links := parseLinkHeader(resp.Header.Get("Link"))

	page := &Page{Client: client}
	if err := ParseResponse(resp, &page.Items); err != nil {
		return nil, err
	}

	page.NextPage = links["next"]
	page.PrevPage = links["previous"]
	if page.PrevPage == "" {
		page.PrevPage = links["prev"]
	}
	page.HasNext = page.NextPage != ""
	page.HasPrev = page.PrevPage != ""

	return page, nil
}

// Next retrieves the next page of results using the URL from the Link header.
func (p *Page) Next(ctx context.Context) (*Page, error) {
	if !p.HasNext {
		return nil, fmt.Errorf("no next page")
	}

	resp, err := p.Client.RequestURL(ctx, http.MethodGet, p.NextPage, nil)
	if err != nil {
		return nil, err
	}

	return NewPage(resp, p.Client)
}

// Prev retrieves the previous page of results using the URL from the Link header.
func (p *Page) Prev(ctx context.Context) (*Page, error) {
	if !p.HasPrev {
		return nil, fmt.Errorf("no previous page")
	}

	resp, err := p.Client.RequestURL(ctx, http.MethodGet, p.PrevPage, nil)
	if err != nil {
		return nil, err
	}

	return NewPage(resp, p.Client)
}

// parseLinkHeader parses an RFC 5988 Link header value and returns a map
// of rel type to URL. For example:
//
//	<https://example.com/items?page=2>; rel="next"
//
// returns {"next": "https://example.com/items?page=2"}.
func parseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}

	for _, part := range splitLinks(header) {
		urlStart := strings.IndexByte(part, '<')
		urlEnd := strings.IndexByte(part, '>')
		if urlStart < 0 || urlEnd < 0 || urlEnd <= urlStart+1 {
			continue
		}
		linkURL := part[urlStart+1 : urlEnd]

		relStart := strings.Index(part, `rel="`)
		if relStart < 0 {
			continue
		}
		relStart += len(`rel="`)
		relEnd := strings.IndexByte(part[relStart:], '"')
		if relEnd < 0 {
			continue
		}

		links[part[relStart:relStart+relEnd]] = linkURL
	}

	return links
}

// splitLinks splits a Link header value by commas, respecting angle brackets.
func splitLinks(header string) []string {
	var parts []string
	inBrackets := false
	start := 0
	for i := 0; i < len(header); i++ {
		switch header[i] {
		case '<':
			inBrackets = true
		case '>':
			inBrackets = false
		case ',':
			if !inBrackets {
				parts = append(parts, strings.TrimSpace(header[start:i]))
				start = i + 1
			}
		}
	}
	if start < len(header) {
		parts = append(parts, strings.TrimSpace(header[start:]))
	}
	return parts
}
