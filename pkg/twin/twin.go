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

// Package twin is an in-memory stand-in for the Foody API. It serves the
// endpoints the smoke workflow consumes with the same status codes and
// messages, so the workflow can run without network access.
package twin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"

	"github.com/nscale/foody-smoke/pkg/openapi"
)

// Response messages, as returned by the production service.
const (
	MessageCreated            = "Successfully created!"
	MessageEdited             = "Successfully edited"
	MessageDeleted            = "Deleted successfully!"
	MessageNotFound           = "No food revues..."
	MessageDeleteFailed       = "Unable to delete this food revue!"
	MessageUnauthorized       = "Unauthorized"
	MessageInvalidCredentials = "Invalid username or password!"
	MessageValidationFailed   = "One or more validation errors occurred."
)

// Option configures a Twin.
type Option func(*Twin)

// WithUser registers an account. With no accounts registered any non-empty
// credentials are accepted.
func WithUser(username, password string) Option {
	return func(t *Twin) {
		t.users[username] = password
	}
}

// WithLogger sets the request logger.
func WithLogger(logger logr.Logger) Option {
	return func(t *Twin) {
		t.logger = logger
	}
}

// WithStore shares an existing store, e.g. to inspect state from tests.
func WithStore(store *Store) Option {
	return func(t *Twin) {
		t.store = store
	}
}

// WithSeed registers the seed's users and loads its foods.
func WithSeed(seed *Seed) Option {
	return func(t *Twin) {
		t.seed = seed
	}
}

// WithMissingAccessToken makes the authentication endpoint answer 200 with no
// access token, as a misbehaving identity backend would.
func WithMissingAccessToken() Option {
	return func(t *Twin) {
		t.omitAccessToken = true
	}
}

// Twin serves the Foody API from memory.
type Twin struct {
	router          *chi.Mux
	store           *Store
	schema          *openapi.Schema
	logger          logr.Logger
	users           map[string]string
	seed            *Seed
	omitAccessToken bool
}

// New returns a ready to serve twin.
func New(options ...Option) (*Twin, error) {
	schema, err := openapi.Load()
	if err != nil {
		return nil, err
	}

	t := &Twin{
		store:  NewStore(),
		schema: schema,
		logger: logr.Discard(),
		users:  map[string]string{},
	}

	for _, o := range options {
		o(t)
	}

	if t.seed != nil {
		for _, user := range t.seed.Users {
			t.users[user.Username] = user.Password
		}

		if len(t.seed.Foods) > 0 {
			if err := t.store.Load(t.seed.foods()); err != nil {
				return nil, err
			}
		}
	}

	t.router = t.routes()

	return t, nil
}

func (t *Twin) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(t.requestLog)

	t.adminRoutes(r)

	r.With(t.validate).Post("/api/User/Authentication", t.authenticate)

	r.Route("/api/Food", func(r chi.Router) {
		r.Use(t.requireBearer)
		r.Use(t.validate)

		r.Post("/Create", t.createFood)
		r.Patch("/Edit/{foodId}", t.editFood)
		r.Get("/All", t.listFoods)
		r.Delete("/Delete/{foodId}", t.deleteFood)
	})

	return r
}

// Store returns the backing store.
func (t *Twin) Store() *Store {
	return t.store
}

func (t *Twin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t.router.ServeHTTP(w, r)
}
