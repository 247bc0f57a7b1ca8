// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient is the transport layer for the news publishing REST
// API. It builds JSON and multipart requests, attaches the bearer token of
// the current session and normalizes failures into *APIError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultStoragePrefix marks paths of files already hosted by the backend.
const DefaultStoragePrefix = "/storage/"

// TokenSource provides the bearer token of the current session. An empty
// token means the request is sent without an Authorization header.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Client sends requests to the API rooted at a fixed base URL.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	logger        *slog.Logger
	storagePrefix string
	userAgent     string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStoragePrefix sets the path prefix of hosted files that multipart
// encoding must never resend.
func WithStoragePrefix(prefix string) Option {
	return func(c *Client) {
		if prefix != "" {
			c.storagePrefix = prefix
		}
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the API at baseURL (including the /api prefix).
// tokens may be nil for unauthenticated use.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{},
		tokens:        tokens,
		logger:        slog.Default(),
		storagePrefix: DefaultStoragePrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StoragePrefix returns the hosted file prefix used by multipart encoding.
func (c *Client) StoragePrefix() string {
	return c.storagePrefix
}

// PostJSON sends body as JSON and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, out any) error {
	return c.Request(ctx, endpoint, http.MethodPost, body, false, out)
}

// PostMultipart sends fields as multipart/form-data and decodes the response
// into out.
func (c *Client) PostMultipart(ctx context.Context, endpoint string, fields Fields, out any) error {
	return c.Request(ctx, endpoint, http.MethodPost, fields, true, out)
}

// Request sends one request to endpoint (a path relative to the base URL).
//
// When multipart is true body must be Fields. Otherwise a non-nil body is
// encoded as JSON. The response body is always parsed as JSON; a non-2xx
// status or a {"success": false} envelope yields *APIError. On success the
// response is decoded into out when out is non-nil.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any, multipart bool, out any) error {
	if method == "" {
		method = http.MethodPost
	}

	var (
		reader      io.Reader
		contentType string
	)
	switch {
	case multipart:
		fields, ok := body.(Fields)
		if !ok && body != nil {
			return fmt.Errorf("multipart body must be Fields, got %T", body)
		}
		data, ct, err := EncodeMultipart(fields, c.storagePrefix)
		if err != nil {
			return fmt.Errorf("encoding multipart body: %w", err)
		}
		reader, contentType = bytes.NewReader(data), ct
	case body != nil:
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding json body: %w", err)
		}
		reader, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "endpoint", endpoint, "error", err)
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("api request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return decodeResponse(resp.StatusCode, respBody, out)
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// envelope is the part of every response the client inspects itself.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
}

// decodeResponse returns JSON parse failures as they are.
func decodeResponse(status int, body []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return newAPIError(status, env)
	}
	if env.Success != nil && !*env.Success {
		return newAPIError(status, env)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}
