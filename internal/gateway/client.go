// ABOUTME: HTTP client core shared by all API surfaces
// ABOUTME: Handles bearer auth, request IDs, JSON codec and the global 401 hook

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Client talks to the knowledge-base backend.
// All methods are safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the request timeout for the underlying HTTP client.
// Streaming calls are exempt; their lifetime is bounded by ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger.With("component", "gateway") }
}

// New creates a client for the backend at baseURL (e.g.
// "http://localhost:8000/api"). A trailing slash is stripped.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default().With("component", "gateway"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// ClearToken removes the bearer token.
func (c *Client) ClearToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
}

// Token returns the currently installed bearer token, or "".
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetUnauthorizedHandler installs the callback fired whenever any request
// returns 401. The session layer uses it to force a logout regardless of
// which call saw the rejection.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, nil, body, out)
}

// del issues a DELETE request.
func (c *Client) del(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// doJSON builds, sends and decodes one JSON API call.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	requestID := req.Header.Get("X-Request-ID")
	c.logger.Debug("api call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// newRequest builds a request with the base URL, bearer token and a
// generated X-Request-ID.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// responseError turns a non-2xx response into an *APIError, firing the
// unauthorized handler for 401s.
func (c *Client) responseError(resp *http.Response, requestID string) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	apiErr := newAPIError(resp.StatusCode, data, requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.RLock()
		handler := c.onUnauthorized
		c.mu.RUnlock()
		if handler != nil {
			handler()
		}
	}

	return apiErr
}
