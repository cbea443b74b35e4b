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
	"github.com/nscale/foody-smoke/pkg/twin"
	"github.com/nscale/foody-smoke/test/api"
)

var _ = Describe("Security and Authentication", func() {
	Context("When accessing the API with different authentication states", func() {
		Describe("Given missing authentication", func() {
			It("should reject requests without a bearer token", func(ctx SpecContext) {
				client := api.NewSmokeClient(config)
				DeferCleanup(client.Close)

				resp, err := client.ListFoods(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			})

			It("should reject requests with an invalid token", func(ctx SpecContext) {
				client := api.NewSmokeClient(config).Authenticated("not-a-token")
				DeferCleanup(client.Close)

				resp, err := client.ListFoods(ctx)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusUnauthorized))
			})
		})

		Describe("Given invalid credentials", func() {
			It("should fail setup", func(ctx SpecContext) {
				credentials := config.Credentials()
				credentials.Password += "-wrong"

				runner := smoke.NewClientRunner(api.NewSmokeClient(config))
				DeferCleanup(runner.Teardown)

				err := runner.Setup(ctx, credentials)
				Expect(err).To(MatchError(foody.ErrUnexpectedStatus))
				Expect(runner.API()).To(BeNil())
			})
		})

		Describe("Given a login response without an access token", func() {
			It("should fail setup instead of running unauthenticated", func(ctx SpecContext) {
				baseURL := api.StartTwin(twin.WithMissingAccessToken())

				// No contract validation: the malformed login response is the point.
				runner := smoke.NewClientRunner(foody.New(baseURL, foody.WithLogger(GinkgoLogr)))
				DeferCleanup(runner.Teardown)

				Expect(runner.Setup(ctx, config.Credentials())).To(MatchError(foody.ErrMissingAccessToken))

				_, err := runner.Run(ctx)
				Expect(err).To(MatchError(smoke.ErrNotSetUp))
			})
		})
	})
})
