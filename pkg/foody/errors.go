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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingAccessToken is returned when a login succeeds at the HTTP
	// level but the response carries no usable token.
	ErrMissingAccessToken = errors.New("authentication response has no access token")

	// ErrUnexpectedStatus is wrapped by StatusError.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrBodyMismatch is returned when a response body lacks expected content.
	ErrBodyMismatch = errors.New("response body mismatch")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("unable to decode response")

	// ErrValidation is returned when a response does not match the OpenAPI document.
	ErrValidation = errors.New("response failed contract validation")
)

// StatusError records a response whose status code was not the one expected.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// ExpectStatus returns a StatusError unless the response has the given status.
func ExpectStatus(resp *Response, expected int) error {
	if resp.StatusCode == expected {
		return nil
	}

	return &StatusError{
		Method:   resp.Method,
		Path:     resp.Path,
		Expected: expected,
		Actual:   resp.StatusCode,
		Body:     resp.String(),
		TraceID:  resp.TraceID,
	}
}

// ExpectBodyContains checks the raw body for a literal substring.
func ExpectBodyContains(resp *Response, substr string) error {
	if strings.Contains(resp.String(), substr) {
		return nil
	}

	return fmt.Errorf("%w: %s %s: body %q does not contain %q", ErrBodyMismatch, resp.Method, resp.Path, resp.String(), substr)
}

// ExpectNonEmptyBody fails on a zero length body.
func ExpectNonEmptyBody(resp *Response) error {
	if len(resp.Body) > 0 {
		return nil
	}

	return fmt.Errorf("%w: %s %s: body is empty", ErrBodyMismatch, resp.Method, resp.Path)
}
