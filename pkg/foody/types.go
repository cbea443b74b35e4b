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
	"encoding/json"
	"fmt"
	"net/http"
)

// OpReplace is the only patch operation the smoke workflow issues.
const OpReplace = "replace"

// Credentials are posted to the authentication endpoint.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticationResponse is returned by a successful login.
type AuthenticationResponse struct {
	Username    string `json:"username,omitempty"`
	Password    string `json:"password,omitempty"`
	AccessToken string `json:"accessToken"`
}

// Food is the create payload. URL is a pointer so a payload can omit it
// entirely, which is different from sending an empty string.
type Food struct {
	Name        string  `json:"Name"`
	Description string  `json:"Description"`
	URL         *string `json:"Url,omitempty"`
}

// FoodRead is a single entry of the list endpoint.
type FoodRead struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PatchOperation is one JSON-Patch style mutation.
type PatchOperation struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Value any    `json:"value"`
}

// Replace returns a replace operation for the given path.
func Replace(path string, value any) PatchOperation {
	return PatchOperation{
		Path:  path,
		Op:    OpReplace,
		Value: value,
	}
}

// APIResponse is the message envelope used by the food endpoints.
type APIResponse struct {
	Msg    string `json:"msg"`
	FoodID string `json:"foodId,omitempty"`
}

// Response is the raw outcome of a single API call.
type Response struct {
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	TraceID    string
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecode, r.Method, r.Path, err)
	}

	return nil
}

// APIResponse decodes the standard message envelope.
func (r *Response) APIResponse() (*APIResponse, error) {
	result := &APIResponse{}

	if err := r.Decode(result); err != nil {
		return nil, err
	}

	return result, nil
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}
