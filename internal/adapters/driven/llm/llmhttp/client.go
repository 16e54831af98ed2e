// Package llmhttp is the JSON-over-HTTP client shared by the model adapters.
//
// It sets provider headers, traces requests with otelhttp, turns non-200
// replies into a StatusError and retries rate-limited calls.
package llmhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Defaults applied by New.
const (
	DefaultRetries = 2
	DefaultBackoff = time.Second

	// maxRetryWait caps a server supplied Retry-After.
	maxRetryWait = 30 * time.Second

	// statusOverloaded is Anthropic's "overloaded" status.
	statusOverloaded = 529
)

// Options configures a Client.
type Options struct {
	// Provider prefixes error messages, e.g. "openai".
	Provider string

	// BaseURL is joined with request paths. A trailing slash is dropped.
	BaseURL string

	// Header is sent with every request.
	Header http.Header

	Timeout time.Duration

	// Retries is how many times a 429 or 529 reply is retried.
	// Zero means DefaultRetries; negative disables retries.
	Retries int

	// Backoff is the first wait when the server sends no Retry-After.
	// It doubles on each retry.
	Backoff time.Duration
}

// Client posts JSON requests to one provider.
type Client struct {
	provider string
	baseURL  string
	header   http.Header
	http     *http.Client
	retries  int
	backoff  time.Duration
}

// StatusError is a non-200 reply.
type StatusError struct {
	Provider string
	Status   int

	// Message is the provider's error message, or the raw body when it
	// has none.
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.Status, e.Message)
}

// IsStatus reports whether err is a StatusError with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// New creates a client.
func New(opts Options) *Client {
	retries := opts.Retries
	switch {
	case retries == 0:
		retries = DefaultRetries
	case retries < 0:
		retries = 0
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}
	return &Client{
		provider: opts.Provider,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		header:   opts.Header.Clone(),
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		retries: retries,
		backoff: backoff,
	}
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.http.Timeout
}

// PostJSON sends in as JSON to path and decodes a 200 reply into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		body, resp, err := c.do(ctx, http.MethodPost, path, payload)
		if err != nil {
			return err
		}
		if retryable(resp.StatusCode) && attempt < c.retries {
			if err := sleep(ctx, c.wait(resp, attempt)); err != nil {
				return err
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return c.statusError(resp.StatusCode, body)
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

// Get requests path and discards a 200 body. The adapters use it to ping.
func (c *Client) Get(ctx context.Context, path string) error {
	body, resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return c.statusError(resp.StatusCode, body)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, *http.Response, error) {
	var reader io.Reader = http.NoBody
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: create request: %w", c.provider, err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: send request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read response: %w", c.provider, err)
	}
	return body, resp, nil
}

func (c *Client) statusError(status int, body []byte) *StatusError {
	return &StatusError{Provider: c.provider, Status: status, Message: errorMessage(body)}
}

// wait honours Retry-After in seconds, else doubles the backoff.
func (c *Client) wait(resp *http.Response, attempt int) time.Duration {
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil && secs >= 0 {
			return min(time.Duration(secs)*time.Second, maxRetryWait)
		}
	}
	return c.backoff << attempt
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == statusOverloaded
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// errorMessage extracts "error" as either a string (Ollama) or an object
// with a message (OpenAI, Anthropic). Anything else is returned verbatim.
func errorMessage(body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && len(envelope.Error) > 0 {
		var s string
		if json.Unmarshal(envelope.Error, &s) == nil && s != "" {
			return s
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return strings.TrimSpace(string(body))
}
