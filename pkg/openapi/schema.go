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

// Package openapi carries the contract of the consumed Foody API and helpers
// to validate traffic against it.
package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

//go:embed foody.yaml
var document []byte

// Schema is a loaded and routable OpenAPI document.
type Schema struct {
	spec   *openapi3.T
	router routers.Router
}

// Load parses and validates the embedded document.
func Load() (*Schema, error) {
	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := spec.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	router, err := gorillamux.NewRouter(spec)
	if err != nil {
		return nil, fmt.Errorf("creating openapi router: %w", err)
	}

	return &Schema{
		spec:   spec,
		router: router,
	}, nil
}

// Spec returns the parsed document.
func (s *Schema) Spec() *openapi3.T {
	return s.spec
}

// FindRoute returns the route and path parameters matching the request.
func (s *Schema) FindRoute(r *http.Request) (*routers.Route, map[string]string, error) {
	route, params, err := s.router.FindRoute(r)
	if err != nil {
		return nil, nil, fmt.Errorf("finding route for %s %s: %w", r.Method, r.URL.Path, err)
	}

	return route, params, nil
}

func (s *Schema) requestInput(r *http.Request) (*openapi3filter.RequestValidationInput, error) {
	route, params, err := s.FindRoute(r)
	if err != nil {
		return nil, err
	}

	input := &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: params,
		Route:      route,
		Options: &openapi3filter.Options{
			MultiError: true,
		},
	}

	return input, nil
}

// ValidateRequest checks the parameters and body of a request. The body is
// restored so handlers can read it again.
func (s *Schema) ValidateRequest(r *http.Request) error {
	input, err := s.requestInput(r)
	if err != nil {
		return err
	}

	return openapi3filter.ValidateRequest(r.Context(), input)
}

// ValidateResponse checks a response status and body against the route the
// request matched.
func (s *Schema) ValidateResponse(r *http.Request, status int, header http.Header, body []byte) error {
	input, err := s.requestInput(r)
	if err != nil {
		return err
	}

	responseInput := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: input,
		Status:                 status,
		Header:                 header,
		Body:                   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	return openapi3filter.ValidateResponse(context.Background(), responseInput)
}
