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
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscale/foody-smoke/pkg/foody"
	"github.com/nscale/foody-smoke/pkg/smoke"
	"github.com/nscale/foody-smoke/test/api"
)

var _ = Describe("Scenarios In Isolation", func() {
	var runner *smoke.Runner

	BeforeEach(func(ctx SpecContext) {
		runner = api.NewAuthenticatedRunner(ctx, config)
	})

	Context("When a food is injected into fresh state", func() {
		var state *smoke.State

		BeforeEach(func(ctx SpecContext) {
			foodID := api.CreateFoodWithCleanup(ctx, runner.API(),
				smoke.NewFoodPayload().
					WithName(smoke.GenerateFoodName("isolated")).
					Build())

			state = &smoke.State{FoodID: foodID}
		})

		It("should list the injected food", func(ctx SpecContext) {
			api.VerifyFoodPresence(ctx, runner.API(), state.FoodID, true)
		})

		It("should edit the injected food title", func(ctx SpecContext) {
			Expect(smoke.EditFoodTitle(ctx, runner.API(), state)).To(Succeed())
		})

		It("should delete the injected food", func(ctx SpecContext) {
			Expect(smoke.DeleteFood(ctx, runner.API(), state)).To(Succeed())
			api.VerifyFoodPresence(ctx, runner.API(), state.FoodID, false)
		})

		It("should refuse to delete the same food twice", func(ctx SpecContext) {
			Expect(smoke.DeleteFood(ctx, runner.API(), state)).To(Succeed())

			resp, err := runner.API().DeleteFood(ctx, state.FoodID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(resp.String()).To(ContainSubstring(smoke.DeleteFailedMessage))
		})
	})

	Context("When no food has been created", func() {
		It("should fail dependent scenarios without calling the API", func(ctx SpecContext) {
			state := &smoke.State{}

			Expect(smoke.EditFoodTitle(ctx, runner.API(), state)).To(MatchError(smoke.ErrNoFoodID))
			Expect(smoke.DeleteFood(ctx, runner.API(), state)).To(MatchError(smoke.ErrNoFoodID))
		})

		It("should report negative paths independently of prior scenarios", func(ctx SpecContext) {
			state := &smoke.State{}

			Expect(smoke.CreateFoodWithoutRequiredFields(ctx, runner.API(), state)).To(Succeed())
			Expect(smoke.EditNonExistingFood(ctx, runner.API(), state)).To(Succeed())
			Expect(smoke.DeleteNonExistingFood(ctx, runner.API(), state)).To(Succeed())
			Expect(state.FoodID).To(BeEmpty())
		})
	})

	Context("When running the whole workflow through the runner", func() {
		It("should pass every scenario in declared order", func(ctx SpecContext) {
			report, err := runner.Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Err()).NotTo(HaveOccurred())

			orders := make([]int, len(report.Results))
			for i, result := range report.Results {
				orders[i] = result.Order
			}

			Expect(orders).To(Equal([]int{1, 2, 3, 4, 5, 6, 7}))
			GinkgoWriter.Println(report.Summary())
		})

		It("should reject a payload with an empty name only", func(ctx SpecContext) {
			resp, err := runner.API().CreateFood(ctx, smoke.NewFoodPayload().WithName("").Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(foody.ExpectStatus(resp, http.StatusBadRequest)).To(Succeed())
		})
	})
})
