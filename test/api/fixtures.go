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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscale/foody-smoke/pkg/foody"
	"github.com/nscale/foody-smoke/pkg/openapi"
	"github.com/nscale/foody-smoke/pkg/smoke"
	"github.com/nscale/foody-smoke/pkg/twin"
)

// LoadTestConfig loads configuration and fails the current node on error.
func LoadTestConfig() *smoke.Config {
	config, err := smoke.LoadConfig()
	Expect(err).NotTo(HaveOccurred())

	return config
}

// StartTwin serves a twin for the lifetime of the current node and returns
// its base URL.
func StartTwin(options ...twin.Option) string {
	t, err := twin.New(append([]twin.Option{twin.WithLogger(GinkgoLogr)}, options...)...)
	Expect(err).NotTo(HaveOccurred())

	server := httptest.NewServer(t)

	DeferCleanup(func() {
		GinkgoWriter.Printf("Stopping Foody twin at %s\n", server.URL)
		server.Close()
	})

	GinkgoWriter.Printf("Started Foody twin at %s\n", server.URL)

	return server.URL
}

// NewSmokeClient returns an unauthenticated client for the configured API,
// starting a twin when no base URL is configured.
func NewSmokeClient(config *smoke.Config) *foody.Client {
	baseURL := config.BaseURL
	if config.UseTwin() {
		baseURL = StartTwin(twin.WithUser(config.Username, config.Password))
	}

	return NewClientFor(config, baseURL)
}

// NewClientFor returns a client for baseURL using the configured options.
func NewClientFor(config *smoke.Config, baseURL string) *foody.Client {
	options := []foody.Option{
		foody.WithTimeout(config.RequestTimeout),
		foody.WithLogger(GinkgoLogr),
		foody.WithRequestLogging(config.LogRequests, config.LogResponses),
	}

	if config.ValidateResponses {
		schema, err := openapi.Load()
		Expect(err).NotTo(HaveOccurred())

		options = append(options, foody.WithResponseValidator(schema))
	}

	return foody.New(baseURL, options...)
}

// NewAuthenticatedRunner returns a runner that has completed setup and
// schedules its teardown.
func NewAuthenticatedRunner(ctx context.Context, config *smoke.Config, options ...smoke.RunnerOption) *smoke.Runner {
	options = append([]smoke.RunnerOption{smoke.WithLogger(GinkgoLogr)}, options...)

	runner := smoke.NewClientRunner(NewSmokeClient(config), options...)
	Expect(runner.Setup(ctx, config.Credentials())).To(Succeed())

	DeferCleanup(runner.Teardown)

	return runner
}

// CreateFoodWithCleanup creates a food and schedules automatic cleanup.
func CreateFoodWithCleanup(ctx context.Context, api smoke.API, payload foody.Food) string {
	resp, err := api.CreateFood(ctx, payload)
	Expect(err).NotTo(HaveOccurred())
	Expect(foody.ExpectStatus(resp, http.StatusCreated)).To(Succeed())

	result, err := resp.APIResponse()
	Expect(err).NotTo(HaveOccurred())
	Expect(result.FoodID).NotTo(BeEmpty())

	foodID := result.FoodID

	GinkgoWriter.Printf("Created food with ID: %s\n", foodID)

	// Runs on success and failure alike. A 400 means the test already deleted it.
	DeferCleanup(func(ctx SpecContext) {
		resp, err := api.DeleteFood(ctx, foodID)
		switch {
		case err != nil:
			GinkgoWriter.Printf("Warning: Failed to delete food %s: %v\n", foodID, err)
		case resp.StatusCode == http.StatusOK:
			GinkgoWriter.Printf("Successfully deleted food: %s\n", foodID)
		}
	})

	return foodID
}

// ListFoodIDs returns the identifiers of all listed foods.
func ListFoodIDs(ctx context.Context, api smoke.API) []string {
	resp, err := api.ListFoods(ctx)
	Expect(err).NotTo(HaveOccurred())
	Expect(foody.ExpectStatus(resp, http.StatusOK)).To(Succeed())

	var foods []foody.FoodRead

	Expect(resp.Decode(&foods)).To(Succeed())

	ids := make([]string, len(foods))

	for i, food := range foods {
		ids[i] = food.ID
	}

	return ids
}

// VerifyFoodPresence verifies whether a food is present in the list.
func VerifyFoodPresence(ctx context.Context, api smoke.API, foodID string, present bool) {
	ids := ListFoodIDs(ctx, api)

	if present {
		Expect(ids).To(ContainElement(foodID), "Expected food ID %s to be present in the list", foodID)
		return
	}

	Expect(ids).NotTo(ContainElement(foodID), "Expected food ID %s to be absent from the list", foodID)
}
