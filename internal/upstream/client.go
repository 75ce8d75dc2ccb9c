// Package upstream talks to the boarding-house REST API that owns tenants,
// contracts, invoices and payments.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"tenant-portal-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnauthorized is returned when the upstream rejects the bearer token
	ErrUnauthorized = errors.New("upstream: unauthorized")
	// ErrTimeout is returned when a request did not finish before its deadline
	ErrTimeout = errors.New("upstream: request timed out")
	// ErrUnreachable is returned when no HTTP response was received at all
	ErrUnreachable = errors.New("upstream: unreachable")
)

// APIError is a non-2xx answer from the upstream
type APIError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %s: %d %s", e.Path, e.StatusCode, e.Message)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match a 401.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Response is a fully read upstream answer
type Response struct {
	StatusCode int
	Path       string
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON parses the body. A body that is not JSON parses to an empty result.
func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Message is the human readable message of the body, or "HTTP <code>".
func (r *Response) Message() string {
	if msg := StringOf(r.JSON(), "message", "error", "msg"); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", r.StatusCode)
}

func (r *Response) asError() error {
	return &APIError{StatusCode: r.StatusCode, Path: r.Path, Message: r.Message()}
}

// RetryPolicy bounds PostWithRetry. Each attempt gets its own Timeout and the
// wait before attempt n+1 is Backoff*n.
type RetryPolicy struct {
	Attempts int
	Timeout  time.Duration
	Backoff  time.Duration
}

// DefaultLoginPolicy is three attempts of eight seconds with a linear backoff
var DefaultLoginPolicy = RetryPolicy{Attempts: 3, Timeout: 8 * time.Second, Backoff: time.Second}

// Client is an HTTP client bound to the upstream base URL
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new upstream client
func NewClient(baseURL string, timeout time.Duration, logger *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Get performs a single GET. Non-2xx answers become an *APIError.
func (c *Client) Get(ctx context.Context, token, path string) (*Response, error) {
	resp, err := c.do(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.asError()
	}
	return resp, nil
}

// GetFirst walks candidate endpoints in order. The first 2xx answer wins, a 404
// moves on to the next candidate and any other status stops the walk.
func (c *Client) GetFirst(ctx context.Context, token string, paths ...string) (*Response, error) {
	if len(paths) == 0 {
		return nil, errors.New("upstream: no candidate endpoints")
	}

	var lastErr error
	for _, path := range paths {
		resp, err := c.do(ctx, http.MethodGet, path, token, nil)
		if err != nil {
			return nil, err
		}
		if resp.OK() {
			return resp, nil
		}
		lastErr = resp.asError()
		if resp.StatusCode != http.StatusNotFound {
			return nil, lastErr
		}
		c.logger.WithFields(map[string]interface{}{
			"path":   path,
			"status": resp.StatusCode,
		}).Debug("Upstream candidate not found, trying next")
	}
	return nil, lastErr
}

// Post performs a single JSON POST. Non-2xx answers become an *APIError.
func (c *Client) Post(ctx context.Context, token, path string, body interface{}) (*Response, error) {
	resp, err := c.do(ctx, http.MethodPost, path, token, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, resp.asError()
	}
	return resp, nil
}

// PostWithRetry posts body, retrying only when no HTTP answer arrived. Any
// answer, successful or not, is returned as is for the caller to judge.
func (c *Client) PostWithRetry(ctx context.Context, token, path string, body interface{}, policy RetryPolicy) (*Response, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx := ctx
		cancel := func() {}
		if policy.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
		}
		resp, err := c.do(attemptCtx, http.MethodPost, path, token, body)
		cancel()
		if err == nil {
			return resp, nil
		}
		if !errors.Is(err, ErrTimeout) && !errors.Is(err, ErrUnreachable) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
		lastErr = err

		c.logger.WithError(err).WithFields(map[string]interface{}{
			"path":    path,
			"attempt": attempt,
			"of":      attempts,
		}).Warn("Upstream request failed")

		if attempt < attempts && policy.Backoff > 0 {
			timer := time.NewTimer(policy.Backoff * time.Duration(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, lastErr
			case <-timer.C:
			}
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify(method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(method, path, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Debug("Upstream response")

	return &Response{StatusCode: resp.StatusCode, Path: path, Body: data}, nil
}

func classify(method, path string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s %s: %v", ErrTimeout, method, path, err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return fmt.Errorf("%w: %s %s: %v", ErrUnreachable, method, path, err)
}
