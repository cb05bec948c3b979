// Package gateway implements the typed HTTP client for the Speech AI
// multi-product API gateway. Each call is a stateless request/response:
// the client holds no mutable state beyond its immutable config, so a
// single Client is safe for concurrent use.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AuthScheme selects which credential header the client attaches.
// Exactly one header is sent per request: the gateway's tie-break when
// several credential headers arrive together is unspecified, so the
// scheme is fixed at construction rather than inferred per call.
type AuthScheme int

const (
	// AuthSubscriptionKey sends Ocp-Apim-Subscription-Key (the APIM default).
	AuthSubscriptionKey AuthScheme = iota
	// AuthBearer sends Authorization: Bearer <key>.
	AuthBearer
	// AuthAPIKey sends api-key: <key>.
	AuthAPIKey
)

func (s AuthScheme) String() string {
	switch s {
	case AuthBearer:
		return "bearer"
	case AuthAPIKey:
		return "api-key"
	default:
		return "subscription-key"
	}
}

// Config holds everything needed to reach the gateway. Immutable after
// NewConfig returns.
type Config struct {
	baseURL    string
	apiKey     string
	scheme     AuthScheme
	timeout    time.Duration
	httpClient *http.Client
}

type Option func(*Config)

// WithAuthScheme overrides the default subscription-key header.
func WithAuthScheme(scheme AuthScheme) Option {
	return func(c *Config) {
		c.scheme = scheme
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
// Ignored when WithHTTPClient is also given.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.timeout = timeout
	}
}

// WithHTTPClient swaps in a caller-owned http.Client, for custom
// transports or proxies.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.httpClient = client
	}
}

func NewConfig(baseURL, apiKey string, opts ...Option) *Config {
	cfg := &Config{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		scheme:  AuthSubscriptionKey,
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient validates the config and returns a ready client. No network
// I/O happens here; a bad credential only surfaces on the first call.
func NewClient(config *Config) (*Client, error) {
	if config.apiKey == "" {
		return nil, ErrMissingCredential
	}
	if config.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	httpClient := config.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     1 * time.Minute,
			},
		}
	}

	return &Client{config: config, httpClient: httpClient}, nil
}

// CallJSON POSTs body as JSON to path and decodes the JSON response into
// out. Pass a *map[string]any when the response shape isn't known ahead
// of time, or nil to discard the body. Non-2xx statuses come back as
// *APIError; a malformed success body comes back as *DecodeError.
func (c *Client) CallJSON(ctx context.Context, path string, body, out any) error {
	rsp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	return decodeJSON(path, rsp, out)
}

// CallBinary POSTs body as JSON and returns the raw response bytes, for
// endpoints whose success body is audio or image data rather than JSON.
func (c *Client) CallBinary(ctx context.Context, path string, body any) ([]byte, error) {
	rsp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()

	if err := checkStatus(rsp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return data, nil
}

// Get fetches path with no request body and decodes the JSON response
// into out (nil to discard).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	rsp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	return decodeJSON(path, rsp, out)
}

// Health probes one of the gateway's services, e.g. Health(ctx, "tts").
func (c *Client) Health(ctx context.Context, service string) error {
	return c.Get(ctx, "/"+service+"/health", nil)
}

// Response is a raw streaming response handed to callers of Stream.
type Response struct {
	StatusCode int
	Body       io.ReadCloser
}

// Stream POSTs body and returns the response without reading it, for
// SSE endpoints. The caller owns closing Body.
func (c *Client) Stream(ctx context.Context, path string, body any) (*Response, error) {
	rsp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}

	if err := checkStatus(rsp); err != nil {
		rsp.Body.Close()
		return nil, err
	}

	return &Response{StatusCode: rsp.StatusCode, Body: rsp.Body}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeader(req)

	rsp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending %s %s: %w", method, path, err)
	}

	return rsp, nil
}

func (c *Client) setAuthHeader(req *http.Request) {
	switch c.config.scheme {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+c.config.apiKey)
	case AuthAPIKey:
		req.Header.Set("api-key", c.config.apiKey)
	default:
		req.Header.Set("Ocp-Apim-Subscription-Key", c.config.apiKey)
	}
}

func decodeJSON(path string, rsp *http.Response, out any) error {
	if err := checkStatus(rsp); err != nil {
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, rsp.Body)
		return nil
	}

	if err := json.NewDecoder(rsp.Body).Decode(out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	return nil
}

func checkStatus(rsp *http.Response) error {
	if rsp.StatusCode >= 200 && rsp.StatusCode < 300 {
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(rsp.Body, 1<<20))
	return &APIError{StatusCode: rsp.StatusCode, Message: errorMessage(raw)}
}

// errorMessage pulls a human-readable message out of a gateway error
// body. The services behind the gateway don't agree on a single error
// shape, so try the common keys before falling back to the raw text.
func errorMessage(raw []byte) string {
	parsed := struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}{}

	if err := json.Unmarshal(raw, &parsed); err == nil {
		switch {
		case parsed.Message != "":
			return parsed.Message
		case parsed.Error.Message != "":
			return parsed.Error.Message
		case parsed.Detail != "":
			return parsed.Detail
		}
	}

	return strings.TrimSpace(string(raw))
}
