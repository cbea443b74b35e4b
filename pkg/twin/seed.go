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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is the initial content of a twin, usually read from a YAML file:
//
//	foods:
//	- name: Pizza
//	  description: Thin crust
//	  url: https://example.com/pizza.png
type Seed struct {
	Users []SeedUser `yaml:"users"`
	Foods []SeedFood `yaml:"foods"`
}

// SeedUser is an account accepted by the login endpoint.
type SeedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SeedFood is a food present before any request is served.
type SeedFood struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (*Seed, error) {
	seed := &Seed{}

	if err := yaml.Unmarshal(data, seed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	for i, user := range seed.Users {
		if user.Username == "" || user.Password == "" {
			return nil, fmt.Errorf("%w: user %d needs a username and password", ErrInvalidState, i)
		}
	}

	return seed, nil
}

// LoadSeedFile reads and decodes a YAML seed file.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	return ParseSeed(data)
}

func (s *Seed) foods() []Food {
	foods := make([]Food, len(s.Foods))

	for i, food := range s.Foods {
		foods[i] = Food{
			ID:          food.ID,
			Name:        food.Name,
			Description: food.Description,
			URL:         food.URL,
		}
	}

	return foods
}
