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

package smoke

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/nscale/foody-smoke/pkg/foody"

	"k8s.io/utils/ptr"
)

// Workflow fixtures.
const (
	NewFoodName        = "New Food"
	NewFoodDescription = "Delicious new food"
	UpdatedFoodName    = "Updated Food Name"
	MissingFoodName    = "New Title"
	NonExistingFoodID  = "123"
	NamePath           = "/name"
)

// GenerateFoodName returns a name with a random suffix, for runs that share
// an account with other users.
func GenerateFoodName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

// FoodPayloadBuilder builds food payloads for testing.
type FoodPayloadBuilder struct {
	payload foody.Food
}

// NewFoodPayload creates a new food payload builder with the workflow defaults.
func NewFoodPayload() *FoodPayloadBuilder {
	return &FoodPayloadBuilder{
		payload: foody.Food{
			Name:        NewFoodName,
			Description: NewFoodDescription,
			URL:         ptr.To(""),
		},
	}
}

// WithName sets the food name.
func (b *FoodPayloadBuilder) WithName(name string) *FoodPayloadBuilder {
	b.payload.Name = name

	return b
}

// WithDescription sets the food description.
func (b *FoodPayloadBuilder) WithDescription(description string) *FoodPayloadBuilder {
	b.payload.Description = description

	return b
}

// WithURL sets the picture URL.
func (b *FoodPayloadBuilder) WithURL(url string) *FoodPayloadBuilder {
	b.payload.URL = ptr.To(url)

	return b
}

// WithoutURL omits the URL from the payload entirely.
func (b *FoodPayloadBuilder) WithoutURL() *FoodPayloadBuilder {
	b.payload.URL = nil

	return b
}

// Build returns the completed food payload.
func (b *FoodPayloadBuilder) Build() foody.Food {
	return b.payload
}

// RenamePatch returns a single replace of the food name.
func RenamePatch(name string) []foody.PatchOperation {
	return []foody.PatchOperation{
		foody.Replace(NamePath, name),
	}
}
