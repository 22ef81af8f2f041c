package eol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public endoflife.date API root.
const DefaultBaseURL = "https://endoflife.date/api"

const (
	httpTimeout   = 10 * time.Second
	retryAttempts = 3
	retryDelay    = time.Second
)

var (
	// ErrNotFound is returned when the registry has no table for a product.
	ErrNotFound = errors.New("product not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection
	// errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// retryableError marks transient failures worth another attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Client fetches raw cycle tables from the EOL registry. Transient failures
// (network errors, 5xx) are retried with exponential backoff; a 404 is
// final.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a registry client. An empty baseURL uses the public API.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: baseURL,
	}
}

// Fetch retrieves a product's cycle table as raw JSON. The raw bytes are
// what gets cached, so fields the core does not interpret survive a cache
// round-trip untouched.
func (c *Client) Fetch(ctx context.Context, p Product) ([]byte, error) {
	var body []byte
	fetch := func() error {
		data, err := c.get(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, p.Slug()))
		if err != nil {
			return err
		}
		body = data
		return nil
	}

	delay := retryDelay
	var lastErr error
	for i := 0; i < retryAttempts; i++ {
		err := fetch()
		if err == nil {
			return body, nil
		}
		lastErr = err
		var re *retryableError
		if !errors.As(err, &re) {
			return nil, err
		}
		if i < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &retryableError{err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, &retryableError{err: fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)}
	default:
		return nil, fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
}
