// Package caiga is an HTTP client for the AIP pages published on caiga.ru.
package caiga

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the site the AIP menu and documents are served from.
const DefaultBaseURL = "http://www.caiga.ru"

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Config configures a Client.
type Config struct {
	BaseURL     string        // Default: DefaultBaseURL
	Timeout     time.Duration // Per-request timeout (default: 60s)
	MaxAttempts uint          // Total attempts per request; 1 disables retries (default: 1)
	RetryDelay  time.Duration // Delay between attempts (default: 1s)
	UserAgent   string
	HTTPClient  *http.Client // Optional, overrides Timeout
	Logger      *slog.Logger
}

// Client fetches pages and documents relative to a base URL.
type Client struct {
	base        *url.URL
	httpClient  *http.Client
	maxAttempts uint
	retryDelay  time.Duration
	userAgent   string
	logger      *slog.Logger
}

// NewClient creates a new client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:        base,
		httpClient:  httpClient,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		userAgent:   cfg.UserAgent,
		logger:      logger,
	}, nil
}

// URL returns the absolute URL for a site path.
// A path without a leading slash is treated as rooted at the base URL.
func (c *Client) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base.String() + path
}

// FetchText returns the page at path decoded to UTF-8.
// The source encoding comes from the Content-Type header or the page's own
// meta tags; the menu pages are served in windows-1251.
func (c *Client) FetchText(ctx context.Context, path string) (string, error) {
	var text string
	err := c.get(ctx, path, func(resp *http.Response) error {
		r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
		if err != nil {
			return fmt.Errorf("failed to detect charset: %w", err)
		}
		body, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		text = string(body)
		return nil
	})
	return text, err
}

// FetchBytes returns the raw body at path.
func (c *Client) FetchBytes(ctx context.Context, path string) ([]byte, error) {
	var data []byte
	err := c.get(ctx, path, func(resp *http.Response) error {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}
		data = body
		return nil
	})
	return data, err
}

// get performs a GET and hands a 2xx response to read. Retries are attempted
// only for network errors and 5xx responses, and only when MaxAttempts > 1.
func (c *Client) get(ctx context.Context, path string, read func(*http.Response) error) error {
	target := c.URL(path)

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			if c.userAgent != "" {
				req.Header.Set("User-Agent", c.userAgent)
			}

			start := time.Now()
			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			c.logger.Debug("fetched", "url", target, "status", resp.StatusCode, "duration", time.Since(start))

			if resp.StatusCode < 200 || resp.StatusCode > 299 {
				// Drain so the connection can be reused
				_, _ = io.Copy(io.Discard, resp.Body)
				statusErr := &StatusError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
				if resp.StatusCode >= 500 {
					return statusErr
				}
				return retry.Unrecoverable(statusErr)
			}

			return read(resp)
		},
		retry.Context(ctx),
		retry.Attempts(c.maxAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("retrying request", "url", target, "attempt", n+1, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			return retry.IsRecoverable(err) &&
				!errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded)
		}),
	)
}
