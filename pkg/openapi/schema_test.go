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

package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscale/foody-smoke/pkg/openapi"
)

func jsonRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()

	var r *http.Request

	if body == "" {
		r = httptest.NewRequestWithContext(t.Context(), method, path, nil)
	} else {
		r = httptest.NewRequestWithContext(t.Context(), method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	return r
}

func jsonHeader() http.Header {
	return http.Header{
		"Content-Type": []string{"application/json"},
	}
}

// TestLoad ensures the embedded document is valid and routable.
func TestLoad(t *testing.T) {
	t.Parallel()

	schema, err := openapi.Load()
	require.NoError(t, err)
	require.Equal(t, "Foody", schema.Spec().Info.Title)

	for _, path := range []string{"/api/User/Authentication", "/api/Food/Create", "/api/Food/Edit/{foodId}", "/api/Food/All", "/api/Food/Delete/{foodId}"} {
		require.NotNil(t, schema.Spec().Paths.Find(path), path)
	}

	route, params, err := schema.FindRoute(jsonRequest(t, http.MethodDelete, "/api/Food/Delete/42", ""))
	require.NoError(t, err)
	require.Equal(t, "/api/Food/Delete/{foodId}", route.Path)
	require.Equal(t, "42", params["foodId"])

	_, _, err = schema.FindRoute(jsonRequest(t, http.MethodGet, "/api/Food/Unknown", ""))
	require.Error(t, err)
}

// TestValidateRequest ensures request bodies are checked against the schema.
func TestValidateRequest(t *testing.T) {
	t.Parallel()

	schema, err := openapi.Load()
	require.NoError(t, err)

	// Test 1: full create payload.
	require.NoError(t, schema.ValidateRequest(jsonRequest(t, http.MethodPost, "/api/Food/Create", `{"Name":"New Food","Description":"Delicious new food","Url":""}`)))

	// Test 2: URL is optional.
	require.NoError(t, schema.ValidateRequest(jsonRequest(t, http.MethodPost, "/api/Food/Create", `{"Name":"New Food","Description":"Delicious new food"}`)))

	// Test 3: empty required fields are rejected.
	require.Error(t, schema.ValidateRequest(jsonRequest(t, http.MethodPost, "/api/Food/Create", `{"Name":"","Description":""}`)))

	// Test 4: a replace operation is accepted.
	require.NoError(t, schema.ValidateRequest(jsonRequest(t, http.MethodPatch, "/api/Food/Edit/123", `[{"path":"/name","op":"replace","value":"New Title"}]`)))

	// Test 5: unknown operations and empty documents are rejected.
	require.Error(t, schema.ValidateRequest(jsonRequest(t, http.MethodPatch, "/api/Food/Edit/123", `[{"path":"/name","op":"rename","value":"New Title"}]`)))
	require.Error(t, schema.ValidateRequest(jsonRequest(t, http.MethodPatch, "/api/Food/Edit/123", `[]`)))

	// Test 6: the body can be read again afterwards.
	r := jsonRequest(t, http.MethodPost, "/api/User/Authentication", `{"username":"IvaG1","password":"123456"}`)
	require.NoError(t, schema.ValidateRequest(r))

	var credentials map[string]string

	require.NoError(t, json.NewDecoder(r.Body).Decode(&credentials))
	require.Equal(t, "IvaG1", credentials["username"])
}

// TestValidateResponse ensures response bodies are checked against the
// route the request matched.
func TestValidateResponse(t *testing.T) {
	t.Parallel()

	schema, err := openapi.Load()
	require.NoError(t, err)

	login := jsonRequest(t, http.MethodPost, "/api/User/Authentication", `{"username":"IvaG1","password":"123456"}`)

	// Test 1: a login must carry a token.
	require.NoError(t, schema.ValidateResponse(login, http.StatusOK, jsonHeader(), []byte(`{"username":"IvaG1","accessToken":"abc"}`)))
	require.Error(t, schema.ValidateResponse(login, http.StatusOK, jsonHeader(), []byte(`{"username":"IvaG1"}`)))

	create := jsonRequest(t, http.MethodPost, "/api/Food/Create", `{"Name":"New Food","Description":"Delicious new food"}`)

	// Test 2: messages need msg.
	require.NoError(t, schema.ValidateResponse(create, http.StatusCreated, jsonHeader(), []byte(`{"msg":"Successfully created!","foodId":"42"}`)))
	require.Error(t, schema.ValidateResponse(create, http.StatusCreated, jsonHeader(), []byte(`{"foodId":"42"}`)))

	// Test 3: undocumented statuses fail.
	require.Error(t, schema.ValidateResponse(create, http.StatusTeapot, jsonHeader(), []byte(`{"msg":"tea"}`)))

	// Test 4: list entries are checked.
	list := jsonRequest(t, http.MethodGet, "/api/Food/All", "")

	require.NoError(t, schema.ValidateResponse(list, http.StatusOK, jsonHeader(), []byte(`[{"id":"42","name":"New Food","description":"Delicious new food","url":""}]`)))
	require.Error(t, schema.ValidateResponse(list, http.StatusOK, jsonHeader(), []byte(`[{"name":"New Food"}]`)))
}

// TestFoodPath ensures only food fields can be patched.
func TestFoodPath(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/name", "/description", "/url"} {
		var p openapi.FoodPath

		require.NoError(t, p.UnmarshalText([]byte(path)))
		require.Equal(t, path, p.Value)
	}

	for _, path := range []string{"", "name", "/id", "/Name", "/name/extra"} {
		var p openapi.FoodPath

		require.ErrorIs(t, p.UnmarshalText([]byte(path)), openapi.ErrInvalidFoodPath, path)
	}

	var operation struct {
		Path openapi.FoodPath `json:"path"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"path":"/description"}`), &operation))
	require.Equal(t, "/description", operation.Path.Value)
	require.Error(t, json.Unmarshal([]byte(`{"path":"/id"}`), &operation))
}
