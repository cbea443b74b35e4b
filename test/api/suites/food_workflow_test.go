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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscale/foody-smoke/pkg/smoke"
	"github.com/nscale/foody-smoke/test/api"
)

// The workflow shares one created food between specs, so the container is
// Ordered. ContinueOnFailure keeps later specs running after a failure; the
// ones that depend on the created food then fail in turn.
var _ = Describe("Food Review Workflow", Ordered, ContinueOnFailure, func() {
	var runner *smoke.Runner

	BeforeAll(func(ctx SpecContext) {
		runner = smoke.NewClientRunner(api.NewSmokeClient(config), smoke.WithLogger(GinkgoLogr))
		Expect(runner.Setup(ctx, config.Credentials())).To(Succeed())
	})

	AfterAll(func() {
		if runner != nil {
			runner.Teardown()
		}
	})

	Context("When managing a food review", func() {
		It("should create the food", func(ctx SpecContext) {
			Expect(smoke.CreateFood(ctx, runner.API(), runner.State())).To(Succeed())
			Expect(runner.State().FoodID).NotTo(BeEmpty(), "Food ID should not be null or empty.")
		})

		It("should edit the food title", func(ctx SpecContext) {
			Expect(smoke.EditFoodTitle(ctx, runner.API(), runner.State())).To(Succeed())
		})

		It("should list all foods", func(ctx SpecContext) {
			Expect(smoke.ListFoods(ctx, runner.API(), runner.State())).To(Succeed())
		})

		It("should delete the food", func(ctx SpecContext) {
			Expect(smoke.DeleteFood(ctx, runner.API(), runner.State())).To(Succeed())
		})
	})

	Context("When submitting invalid requests", func() {
		It("should reject a food without required fields", func(ctx SpecContext) {
			Expect(smoke.CreateFoodWithoutRequiredFields(ctx, runner.API(), runner.State())).To(Succeed())
		})

		It("should not find a non-existing food to edit", func(ctx SpecContext) {
			Expect(smoke.EditNonExistingFood(ctx, runner.API(), runner.State())).To(Succeed())
		})

		It("should refuse to delete a non-existing food", func(ctx SpecContext) {
			Expect(smoke.DeleteNonExistingFood(ctx, runner.API(), runner.State())).To(Succeed())
		})
	})
})
