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

package twin

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a food does not exist.
	ErrNotFound = errors.New("food not found")

	// ErrInvalidPatch is returned when a patch cannot be applied.
	ErrInvalidPatch = errors.New("invalid patch")

	// ErrInvalidState is returned when loaded state is inconsistent.
	ErrInvalidState = errors.New("invalid state")
)

// Food is the stored representation of a food review.
type Food struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Store holds all twin state. Foods are kept as JSON documents so patches
// apply to exactly what the list endpoint returns.
type Store struct {
	lock   sync.Mutex
	foods  map[string][]byte
	order  []string
	tokens map[string]string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		foods:  map[string][]byte{},
		tokens: map[string]string{},
	}
}

// IssueToken records and returns a new access token for the user.
func (s *Store) IssueToken(username string) string {
	s.lock.Lock()
	defer s.lock.Unlock()

	token := uuid.NewString()
	s.tokens[token] = username

	return token
}

// ValidToken reports whether the token was issued by this store.
func (s *Store) ValidToken(token string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.tokens[token]

	return ok
}

// Create stores a new food under a fresh identifier.
func (s *Store) Create(name, description, url string) (*Food, error) {
	food := &Food{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		URL:         url,
	}

	data, err := json.Marshal(food)
	if err != nil {
		return nil, err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.foods[food.ID] = data
	s.order = append(s.order, food.ID)

	return food, nil
}

// Get returns a food by identifier.
func (s *Store) Get(id string) (*Food, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, ok := s.foods[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return decode(data)
}

// List returns all foods in creation order.
func (s *Store) List() ([]Food, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	result := make([]Food, 0, len(s.order))

	for _, id := range s.order {
		food, err := decode(s.foods[id])
		if err != nil {
			return nil, err
		}

		result = append(result, *food)
	}

	return result, nil
}

// Patch applies a JSON-Patch document to a food.
func (s *Store) Patch(id string, document []byte) (*Food, error) {
	patch, err := jsonpatch.DecodePatch(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	data, ok := s.foods[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	modified, err := patch.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	food, err := decode(modified)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}

	if food.ID != id {
		return nil, fmt.Errorf("%w: identifier is immutable", ErrInvalidPatch)
	}

	s.foods[id] = modified

	return food, nil
}

// Delete removes a food.
func (s *Store) Delete(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.foods[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	delete(s.foods, id)

	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}

	return nil
}

// Load replaces all foods. Foods without an identifier get a fresh one.
func (s *Store) Load(foods []Food) error {
	loaded := make(map[string][]byte, len(foods))
	order := make([]string, 0, len(foods))

	for _, food := range foods {
		if food.ID == "" {
			food.ID = uuid.NewString()
		}

		if _, ok := loaded[food.ID]; ok {
			return fmt.Errorf("%w: duplicate identifier %s", ErrInvalidState, food.ID)
		}

		data, err := json.Marshal(&food)
		if err != nil {
			return err
		}

		loaded[food.ID] = data
		order = append(order, food.ID)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.foods = loaded
	s.order = order

	return nil
}

// Reset removes every food. Issued tokens stay valid.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.foods = map[string][]byte{}
	s.order = nil
}

// Len returns the number of stored foods.
func (s *Store) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.foods)
}

func decode(data []byte) (*Food, error) {
	food := &Food{}

	if err := json.Unmarshal(data, food); err != nil {
		return nil, err
	}

	return food, nil
}
