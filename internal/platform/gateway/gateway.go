// Copyright (c) 2026 Rentora. All rights reserved.
// Author: dev@rentora.app

/*
Package gateway implements the generic HTTP client every Rentora module calls
to reach the marketplace REST API.

The marketplace service is treated as a black box: this package owns transport
concerns only (timeouts, cookies, rate limiting, request correlation) and the
classification of upstream responses into the client error taxonomy. It never
interprets domain payloads.

Architecture:

  - Client: One instance per process, injected into session/listing/booking
    services.
  - Cookie jar: Carries the ambient refresh cookie the auth endpoint sets, so
    token refresh works without presenting the expired bearer token.
  - Classification: 401 → UNAUTHORIZED, other 4xx → VALIDATION_REJECTED with
    the server's message verbatim, 5xx → SERVER_ERROR, transport failures →
    UNREACHABLE. Nothing escapes untyped.
*/
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/rentora/rentora/internal/platform/apperr"
)

// Options configures a [Client].
type Options struct {
	// BaseURL is the root of the marketplace API, without a trailing slash.
	BaseURL string

	// Timeout bounds each request end to end. Zero means 30s.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64

	Logger *slog.Logger
}

// Client is the request gateway for the marketplace API.
//
// # Concurrency
//
// Client is safe for concurrent use; all mutable transport state lives in the
// underlying [http.Client] and cookie jar.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// New constructs a gateway [Client].
func New(options Options) (*Client, error) {

	// The jar holds the same-site refresh cookie issued at login.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("gateway_cookie_jar_failed: %w", err)
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if options.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), 1)
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: options.BaseURL,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		limiter: limiter,
		log:     logger,
	}, nil
}

// messageEnvelope is the optional `{message}` body upstream endpoints attach
// to 4xx responses.
type messageEnvelope struct {
	Message string `json:"message"`
}

/*
DoJSON executes a JSON request against the marketplace API.

Description: Marshals body (if non-nil), attaches the bearer token (if
non-empty), and decodes a 2xx response into out (if non-nil).

Parameters:
  - ctx: context.Context
  - method: HTTP verb
  - path: API path (e.g. "/api/auth/login")
  - token: Bearer token, or "" for anonymous calls
  - body: Request payload, or nil
  - out: Pointer to the response target, or nil to discard the body

Returns:
  - error: A classified [apperr.AppError], or nil on success
*/
func (c *Client) DoJSON(ctx context.Context, method, path, token string, body, out interface{}) error {

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("gateway_marshal_failed: %w", err))
		}
		reader = bytes.NewReader(encoded)
	}

	return c.do(ctx, method, path, token, "application/json", reader, out)
}

/*
DoMultipart executes a multipart/form-data request against the marketplace API.

Parameters:
  - ctx: context.Context
  - method: HTTP verb
  - path: API path
  - token: Bearer token, or "" for anonymous calls
  - contentType: The multipart content type including the boundary
  - body: The encoded multipart stream
  - out: Pointer to the response target, or nil to discard the body

Returns:
  - error: A classified [apperr.AppError], or nil on success
*/
func (c *Client) DoMultipart(ctx context.Context, method, path, token, contentType string, body io.Reader, out interface{}) error {
	return c.do(ctx, method, path, token, contentType, body, out)
}

// do builds, throttles, executes, and classifies one request.
func (c *Client) do(ctx context.Context, method, path, token, contentType string, body io.Reader, out interface{}) error {

	// Politeness throttle. A canceled context surfaces as Unreachable like
	// any other transport-level failure.
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperr.Unreachable(err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperr.Internal(fmt.Errorf("gateway_build_request_failed: %w", err))
	}

	// Correlation ID for diagnostics; the marketplace echoes it in its logs.
	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("gateway_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
	)

	response, err := c.http.Do(request)
	if err != nil {
		c.log.Warn("gateway_transport_failure",
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return apperr.Unreachable(err)
	}
	defer response.Body.Close()

	if err := c.classify(response, path, requestID); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(response.Body).Decode(out); err != nil {
			// A 2xx with an undecodable body is an upstream defect, surfaced
			// like any other server error.
			appError := apperr.Server(response.StatusCode)
			appError.Cause = fmt.Errorf("gateway_decode_failed: %w", err)
			return appError
		}
	}

	return nil
}

// classify converts a non-2xx upstream response into the client error taxonomy.
func (c *Client) classify(response *http.Response, path, requestID string) error {
	status := response.StatusCode

	switch {
	case status >= 200 && status < 300:
		return nil

	case status == http.StatusUnauthorized:
		c.log.Debug("gateway_unauthorized",
			slog.String("path", path),
			slog.String("request_id", requestID),
		)
		return apperr.Unauthorized("Session expired. Please log in again.")

	case status >= 400 && status < 500:
		// Surface the server's own message verbatim when it sent one.
		message := fmt.Sprintf("Request rejected (status %d)", status)
		var envelope messageEnvelope
		if err := json.NewDecoder(response.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			message = envelope.Message
		}
		return apperr.Rejected(status, message)

	default:
		c.log.Warn("gateway_server_error",
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Int("status", status),
		)
		return apperr.Server(status)
	}
}
