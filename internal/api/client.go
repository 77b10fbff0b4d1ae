// Package api implements the HTTP client the chat widget uses to reach the
// chat backend: POST /api/chat and GET /api/models.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/chatwidget/internal/errors"
	"github.com/diogo/chatwidget/internal/models"
)

// maxBodySize caps how much of a backend response is read
const maxBodySize = 4 << 20

// HTTPDoer is the subset of *http.Client the client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the chat backend
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	timeout    time.Duration
	userAgent  string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient replaces the transport used for every request
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent to the backend
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the backend rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", baseURL)
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		userAgent:  "chatwidget",
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the backend root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends req and returns the parsed JSON body. Non-OK statuses become
// *APIError carrying the body's "error" field; unreadable or non-JSON bodies
// become *ParseError, matching how the widget treats both as failures.
func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) (gjson.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	path := endpointPath(endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, apierrors.NewNetworkError(path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return gjson.Result{}, apierrors.NewNetworkError(path, err)
	}

	if !gjson.ValidBytes(data) {
		return gjson.Result{}, apierrors.NewParseError(
			fmt.Sprintf("response from %s is not valid JSON (status %d)", path, resp.StatusCode), path)
	}
	parsed := gjson.ParseBytes(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Get("error").String()
		if msg == "" {
			msg = models.UnknownErrorText
		}
		return gjson.Result{}, apierrors.NewAPIError(resp.StatusCode, path, msg)
	}

	return parsed, nil
}

// endpointPath strips the query string so errors name the route only
func endpointPath(endpoint string) string {
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}
