// Package feed talks to the remote listing origin over HTTP.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"listing-slideshow/pkg/logger"
	"listing-slideshow/pkg/metrics"
	"listing-slideshow/pkg/retry"
)

// Client manages requests to the listing origin
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
}

// NewClient creates a new feed client. A zero timeout leaves the http.Client
// without a deadline; callers are expected to pass a context.
func NewClient(baseURL string, timeout time.Duration, policy retry.Policy) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		policy: policy,
	}
}

// BaseURL returns the origin root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL builds the absolute URL for path and query.
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Fetch performs a GET against path under the retry policy. decode is called
// with each successful body; an error from decode marks the attempt as
// malformed and it is retried like any other failure.
func (c *Client) Fetch(ctx context.Context, op, path string, query url.Values, decode func(body []byte) error) error {
	start := time.Now()
	defer func() {
		metrics.FeedRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	target := c.URL(path, query)
	return c.policy.Do(ctx, op, func(ctx context.Context, attempt int) error {
		err := c.attempt(ctx, target, decode)
		if err != nil {
			metrics.FeedAttemptsTotal.WithLabelValues(op, "failure").Inc()
			return err
		}
		metrics.FeedAttemptsTotal.WithLabelValues(op, "success").Inc()
		return nil
	})
}

func (c *Client) attempt(ctx context.Context, target string, decode func([]byte) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &RequestError{Kind: ErrNetwork, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GlobalLogger.Errorf("Feed request failed: url=%s, error=%v", target, err)
		return &RequestError{Kind: ErrNetwork, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to read feed response body: url=%s, status=%s, error=%v", target, resp.Status, err)
		return &RequestError{Kind: ErrNetwork, URL: target, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.GlobalLogger.Errorf("Feed request returned non-success status: url=%s, status=%s", target, resp.Status)
		return &RequestError{Kind: ErrHTTPStatus, URL: target, Status: resp.StatusCode}
	}

	if err := decode(body); err != nil {
		logger.GlobalLogger.Errorf("Failed to decode feed response: url=%s, error=%v", target, err)
		return &RequestError{Kind: ErrMalformedResponse, URL: target, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
