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

package twin_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscale/foody-smoke/pkg/twin"
)

const seedDocument = `
users:
- username: reviewer
  password: secret
foods:
- id: pizza
  name: Pizza
  description: Thin crust
  url: https://example.com/pizza.png
- name: Soup
  description: Hot
`

// TestSeed ensures seed users can log in and seed foods are listed.
func TestSeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedDocument), 0o600))

	seed, err := twin.LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seed.Users, 1)
	require.Len(t, seed.Foods, 2)

	tw, err := twin.New(twin.WithSeed(seed))
	require.NoError(t, err)

	w := do(t, tw, http.MethodPost, "/api/User/Authentication", "", `{"username":"reviewer","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	token := decode[authentication](t, w).AccessToken

	w = do(t, tw, http.MethodGet, "/api/Food/All", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	foods := decode[[]twin.Food](t, w)
	require.Len(t, foods, 2)
	require.Equal(t, twin.Food{ID: "pizza", Name: "Pizza", Description: "Thin crust", URL: "https://example.com/pizza.png"}, foods[0])
	require.Equal(t, "Soup", foods[1].Name)
	require.NotEmpty(t, foods[1].ID)

	// Registered users replace the accept-anything default.
	w = do(t, tw, http.MethodPost, "/api/User/Authentication", "", `{"username":"IvaG1","password":"123456"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestSeedInvalid ensures broken seeds are rejected.
func TestSeedInvalid(t *testing.T) {
	t.Parallel()

	_, err := twin.ParseSeed([]byte("foods: {"))
	require.ErrorIs(t, err, twin.ErrInvalidState)

	_, err = twin.ParseSeed([]byte("users:\n- username: reviewer\n"))
	require.ErrorIs(t, err, twin.ErrInvalidState)

	seed, err := twin.ParseSeed([]byte("foods:\n- id: a\n  name: A\n- id: a\n  name: B\n"))
	require.NoError(t, err)

	_, err = twin.New(twin.WithSeed(seed))
	require.ErrorIs(t, err, twin.ErrInvalidState)

	_, err = twin.LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

// TestAdmin ensures tests can inspect, replace and reset twin state.
func TestAdmin(t *testing.T) {
	t.Parallel()

	tw := newTwin(t)
	token := login(t, tw)

	// Test 1: health needs no token.
	w := do(t, tw, http.MethodGet, "/admin/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	// Test 2: load state.
	w = do(t, tw, http.MethodPost, "/admin/state", "", `{"foods":[{"id":"42","name":"Pizza","description":"Thin crust","url":""}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, tw, http.MethodGet, "/admin/state", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"foods":[{"id":"42","name":"Pizza","description":"Thin crust","url":""}]}`, w.Body.String())

	// Test 3: loaded foods are served by the API.
	w = do(t, tw, http.MethodDelete, "/api/Food/Delete/42", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Test 4: invalid state is rejected.
	w = do(t, tw, http.MethodPost, "/admin/state", "", `{bad json`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Test 5: reset keeps the session.
	_, err := tw.Store().Create("Soup", "Hot", "")
	require.NoError(t, err)

	w = do(t, tw, http.MethodPost, "/admin/reset", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Zero(t, tw.Store().Len())

	w = do(t, tw, http.MethodGet, "/api/Food/All", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}
