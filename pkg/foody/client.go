/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package foody

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

// RequestEditorFn decorates every outgoing request, e.g. with credentials.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// WithBearerToken returns a request editor that attaches a bearer token.
func WithBearerToken(token string) RequestEditorFn {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+token)

		return nil
	}
}

// ResponseValidator checks a response against an API contract.
type ResponseValidator interface {
	ValidateResponse(req *http.Request, status int, header http.Header, body []byte) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the per request timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithRequestEditor appends a request editor.
func WithRequestEditor(fn RequestEditorFn) Option {
	return func(c *Client) {
		c.editors = append(c.editors, fn)
	}
}

// WithLogger sets the logger used for request tracing and failures.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithResponseValidator enables contract validation of every response.
func WithResponseValidator(validator ResponseValidator) Option {
	return func(c *Client) {
		c.validator = validator
	}
}

// WithRequestLogging logs request lines and optionally response bodies.
func WithRequestLogging(requests, responses bool) Option {
	return func(c *Client) {
		c.logRequests = requests
		c.logResponses = responses
	}
}

type Client struct {
	baseURL      string
	client       *http.Client
	editors      []RequestEditorFn
	logger       logr.Logger
	validator    ResponseValidator
	endpoints    *Endpoints
	logRequests  bool
	logResponses bool
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    &http.Client{},
		logger:    logr.Discard(),
		endpoints: NewEndpoints(),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

// With returns a copy of the client with extra options applied. The copy
// shares the underlying HTTP client and so its connection pool.
func (c *Client) With(options ...Option) *Client {
	clone := *c
	clone.editors = append([]RequestEditorFn(nil), c.editors...)

	for _, o := range options {
		o(&clone)
	}

	return &clone
}

// Authenticated returns a copy of the client that sends the token as a
// bearer credential on every request.
func (c *Client) Authenticated(token string) *Client {
	return c.With(WithRequestEditor(WithBearerToken(token)))
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *Client) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceID string) {
	c.logger.Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "status", actualStatus, "body", body, "traceID", traceID)
}

//nolint:cyclop
func (c *Client) doRequest(ctx context.Context, method, path string, body any, expectedStatus int) (*Response, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	traceID := extractTraceID(traceParent)

	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=foody-smoke")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for _, editor := range c.editors {
		if err := editor(ctx, req); err != nil {
			return nil, fmt.Errorf("editing request: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", method, "path", path, "duration", duration, "traceID", traceID)
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "traceID", traceID)
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.logRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.logResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	response := &Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		TraceID:    traceID,
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(req, resp.StatusCode, resp.Header, respBody); err != nil {
			return response, fmt.Errorf("%w: %s %s (trace ID: %s): %w", ErrValidation, method, path, traceID, err)
		}
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceID)
		return response, ExpectStatus(response, expectedStatus)
	}

	return response, nil
}

// Authenticate exchanges credentials for an access token.
func (c *Client) Authenticate(ctx context.Context, credentials Credentials) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Authenticate(), credentials, http.StatusOK)
	if err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	result := &AuthenticationResponse{}

	if err := resp.Decode(result); err != nil {
		return "", fmt.Errorf("authenticating: %w", err)
	}

	if result.AccessToken == "" {
		return "", fmt.Errorf("authenticating as %q: %w", credentials.Username, ErrMissingAccessToken)
	}

	return result.AccessToken, nil
}

// CreateFood posts a new food. The status is not checked.
func (c *Client) CreateFood(ctx context.Context, food Food) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.endpoints.CreateFood(), food, 0)
	if err != nil {
		return resp, fmt.Errorf("creating food: %w", err)
	}

	return resp, nil
}

// EditFood applies patch operations to a food. The status is not checked.
func (c *Client) EditFood(ctx context.Context, foodID string, operations []PatchOperation) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, c.endpoints.EditFood(foodID), operations, 0)
	if err != nil {
		return resp, fmt.Errorf("editing food: %w", err)
	}

	return resp, nil
}

// ListFoods reads the whole collection. The status is not checked.
func (c *Client) ListFoods(ctx context.Context) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.endpoints.ListFoods(), nil, 0)
	if err != nil {
		return resp, fmt.Errorf("listing foods: %w", err)
	}

	return resp, nil
}

// DeleteFood removes a food. The status is not checked.
func (c *Client) DeleteFood(ctx context.Context, foodID string) (*Response, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.DeleteFood(foodID), nil, 0)
	if err != nil {
		return resp, fmt.Errorf("deleting food: %w", err)
	}

	return resp, nil
}
