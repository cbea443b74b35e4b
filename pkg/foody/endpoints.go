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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// User endpoints.
func (e *Endpoints) Authenticate() string {
	return "/api/User/Authentication"
}

// Food endpoints.
func (e *Endpoints) CreateFood() string {
	return "/api/Food/Create"
}

func (e *Endpoints) EditFood(foodID string) string {
	return fmt.Sprintf("/api/Food/Edit/%s", url.PathEscape(foodID))
}

func (e *Endpoints) ListFoods() string {
	return "/api/Food/All"
}

func (e *Endpoints) DeleteFood(foodID string) string {
	return fmt.Sprintf("/api/Food/Delete/%s", url.PathEscape(foodID))
}
