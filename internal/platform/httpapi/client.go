package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/platform/logging"
)

const maxErrorBody = 64 << 10

// Request describes one API call. Path is relative to the base URL.
// At most one of JSON and Form is set.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	JSON   any
	Form   url.Values
	Header http.Header
	// SkipUnauthorizedHook keeps credential endpoints from logging the
	// user out when they answer 401.
	SkipUnauthorizedHook bool
}

// Client speaks JSON to the writing platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     hclog.Logger

	mu             sync.RWMutex
	onUnauthorized func()
}

type Option func(*Client)

func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTransport(base http.RoundTripper) Option {
	return func(c *Client) {
		if bearer, ok := c.httpClient.Transport.(*BearerTransport); ok {
			bearer.Base = base
		}
	}
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &BearerTransport{Tokens: tokens},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.OrNull(c.logger).Named("http")
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// OnUnauthorized registers fn to run when a mutating request is rejected
// with 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, JSON: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, JSON: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, JSON: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path}, out)
}

func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", r.Method, "path", r.Path, "error", err)
		return fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("request", "method", r.Method, "path", r.Path, "status", resp.StatusCode, "elapsed", time.Since(started))

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(resp.StatusCode, body)}
		if resp.StatusCode == http.StatusUnauthorized && isMutating(r.Method) && !r.SkipUnauthorizedHook {
			c.fireUnauthorized()
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(r.Path, "/")
	if len(r.Query) > 0 {
		endpoint += "?" + r.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.JSON != nil:
		payload, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Path, err)
	}
	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

func (c *Client) fireUnauthorized() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		c.logger.Info("session rejected by api, logging out")
		fn()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// Path joins escaped segments into an API path, e.g. Path("profile", name, "follow").
func Path(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return "/" + strings.Join(escaped, "/")
}
