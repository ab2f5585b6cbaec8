// Package wordpress is a small client for the WordPress REST API (wp/v2)
// authenticated with an application password.
package wordpress

import (
	"aineoo/internal/apperr"
	"aineoo/internal/logger"
	"aineoo/internal/observability"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const userAgent = "AineooPublisher/2.0 (WordPress Auto-Publish)"

const (
	DefaultTimeout     = 40 * time.Second
	defaultMaxAttempts = 3
	defaultInitialWait = time.Second
	defaultMaxWait     = 16 * time.Second
)

// Client talks to {base}/wp-json/wp/v2. Term lookups are cached per client.
type Client struct {
	baseURL    string
	apiURL     string
	user       string
	password   string
	httpClient *http.Client

	maxAttempts int
	initialWait time.Duration
	maxWait     time.Duration

	mu    sync.Mutex
	terms map[string]int
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets the attempt budget and the backoff bounds.
func WithRetry(attempts int, initial, max time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = attempts
		c.initialWait = initial
		c.maxWait = max
	}
}

// NewClient creates a WordPress client for the site at baseURL.
func NewClient(baseURL, user, appPassword string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := strings.TrimRight(baseURL, "/")
	c := &Client{
		baseURL:     base,
		apiURL:      base + "/wp-json/wp/v2",
		user:        user,
		password:    appPassword,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: defaultMaxAttempts,
		initialWait: defaultInitialWait,
		maxWait:     defaultMaxWait,
		terms:       make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

// BaseURL returns the site root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CanonicalURL returns the public permalink for slug.
func (c *Client) CanonicalURL(slug string) string {
	return fmt.Sprintf("%s/%s/", c.baseURL, slug)
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	headers     map[string]string
	expected    []int
}

// do sends req, retrying network errors, 5xx and 429 with exponential
// backoff. Other 4xx responses fail immediately.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	endpoint := c.apiURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	var out []byte
	attempt := 0
	op := func() error {
		attempt++
		var body io.Reader
		if req.body != nil {
			body = bytes.NewReader(req.body)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		httpReq.Header.Set("User-Agent", userAgent)
		httpReq.Header.Set("Accept", "application/json")
		if req.contentType != "" {
			httpReq.Header.Set("Content-Type", req.contentType)
		}
		for k, v := range req.headers {
			httpReq.Header.Set(k, v)
		}
		if c.user != "" && c.password != "" {
			httpReq.SetBasicAuth(c.user, c.password)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			observability.WordPressRequests.WithLabelValues(req.method, "0").Inc()
			wpErr := &apperr.WordPressError{Method: req.method, Path: req.path, Err: err}
			if ctx.Err() != nil {
				return backoff.Permanent(wpErr)
			}
			return wpErr
		}
		defer func() { _ = resp.Body.Close() }()
		observability.WordPressRequests.WithLabelValues(req.method, strconv.Itoa(resp.StatusCode)).Inc()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &apperr.WordPressError{Method: req.method, Path: req.path, Status: resp.StatusCode, Err: err}
		}
		for _, code := range req.expected {
			if resp.StatusCode == code {
				out = data
				return nil
			}
		}

		wpErr := &apperr.WordPressError{Method: req.method, Path: req.path, Status: resp.StatusCode, Body: string(data)}
		if !wpErr.Retryable() {
			return backoff.Permanent(wpErr)
		}
		return wpErr
	}

	notify := func(err error, wait time.Duration) {
		logger.Warn("WordPress request failed, retrying", "method", req.method, "path", req.path, "attempt", attempt, "max_attempts", c.maxAttempts, "wait", wait.String(), "error", err.Error())
	}

	if err := backoff.RetryNotify(op, c.policy(ctx), notify); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) policy(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialWait
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = c.maxWait
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.maxAttempts-1)), ctx)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	data, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query, expected: []int{http.StatusOK}})
	if err != nil {
		return err
	}
	return decode(data, v)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, v any, expected ...int) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	data, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: "application/json",
		expected:    expected,
	})
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return decode(data, v)
}

func decode(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a WordPress 404.
func IsNotFound(err error) bool {
	var wpErr *apperr.WordPressError
	return errors.As(err, &wpErr) && wpErr.IsNotFound()
}
