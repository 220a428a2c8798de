package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// TokenSource supplies the bearer token for authenticated calls. A session
// store satisfies this directly.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, mostly useful in tests.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) { return string(t), nil }

// Client is a typed HTTP client for the storefront backend. All calls are
// single-shot: there is no retry loop, and recovery from failure is always
// caller-driven.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: "storefront-backend",
	})
	return c
}

// token resolves the bearer token before any network activity. A missing
// token short-circuits with ErrUnauthorized so no round-trip is wasted.
func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", ErrUnauthorized
	}
	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if tok == "" {
		return "", ErrUnauthorized
	}
	return tok, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal %s %s request: %w", method, path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("api: build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		tok, errTok := c.token(ctx)
		if errTok != nil {
			return errTok
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpc.Do(req)
	})
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out != nil {
		if errDec := json.NewDecoder(resp.Body).Decode(out); errDec != nil {
			return fmt.Errorf("api: decode %s %s response: %w", method, path, errDec)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into an APIError, preferring the
// server's own message when the body carries one.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if errJSON := json.Unmarshal(raw, &body); errJSON == nil {
		if body.Message != "" {
			apiErr.Message = body.Message
		} else if body.Error != "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
