// Package ghapi is a minimal client for the hosting API's REST endpoints.
// It covers exactly what the pipeline needs: paginated repository search and
// release counting, with bounded retries around throttling.
package ghapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://api.github.com"
	acceptHeader   = "application/vnd.github+json"
	userAgent      = "ckscope"

	defaultMaxRetries = 3
	defaultRetryWait  = 2 * time.Second
)

// Sentinel errors callers branch on with errors.Is.
var (
	// ErrRateLimited marks a throttle response that survived every retry.
	ErrRateLimited = errors.New("rate limited by the hosting API")

	// ErrMalformedPage marks a page whose body could not be decoded. The
	// caller should skip the page and keep going.
	ErrMalformedPage = errors.New("malformed search page")
)

// Client talks to the hosting API. The zero value is not usable; construct
// with NewClient. Fields are exported so tests can point the client at a
// local server and drop the waits.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	MaxRetries int
	RetryWait  time.Duration
}

// NewClient creates a client. An empty token is allowed; the API then
// enforces its much lower anonymous quota.
func NewClient(token string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		BaseURL:    defaultBaseURL,
		Token:      token,
		MaxRetries: defaultMaxRetries,
		RetryWait:  defaultRetryWait,
	}
}

// getJSON issues one GET with bounded retries and decodes the body into v.
// Throttling (403/429) and server errors are retried with backoff, honoring
// Retry-After when present. Other client errors are permanent.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.backoff(attempt, lastErr)); err != nil {
				return err
			}
		}

		body, err := c.getOnce(ctx, url)
		if err == nil {
			if decodeErr := json.Unmarshal(body, v); decodeErr != nil {
				return fmt.Errorf("%w: %v", ErrMalformedPage, decodeErr)
			}
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("giving up after %d attempts: %w", c.MaxRetries+1, lastErr)
}

// getOnce performs a single request and classifies the response.
func (c *Client) getOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &transientError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &transientError{err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, &throttleError{retryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 500:
		return nil, &transientError{err: fmt.Errorf("server error %d", resp.StatusCode)}
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncateBody(body))
	}
}

// backoff returns the wait before the given retry attempt. A throttle
// response with an explicit Retry-After wins over the default ramp.
func (c *Client) backoff(attempt int, lastErr error) time.Duration {
	var throttle *throttleError
	if errors.As(lastErr, &throttle) && throttle.retryAfter > 0 {
		return throttle.retryAfter
	}
	return time.Duration(attempt) * c.RetryWait
}

// transientError wraps network and server-side failures worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// throttleError marks a rate-limit response.
type throttleError struct {
	retryAfter time.Duration
}

func (e *throttleError) Error() string {
	if e.retryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.retryAfter)
	}
	return "rate limited"
}

func (e *throttleError) Is(target error) bool { return target == ErrRateLimited }

// isRetryable reports whether getOnce's error deserves another attempt.
func isRetryable(err error) bool {
	var transient *transientError
	var throttle *throttleError
	return errors.As(err, &transient) || errors.As(err, &throttle)
}

// parseRetryAfter reads the delay-seconds form of the Retry-After header.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// sleepCtx sleeps for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// truncateBody keeps error messages readable when the API returns HTML.
func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
