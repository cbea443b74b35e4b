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

// Package api provides Ginkgo fixtures for the Foody smoke suites.
//
// # Targets
//
// The suites run against the API named by FOODY_BASE_URL. When it is unset
// every suite starts an in-memory twin of the API (pkg/twin) behind an
// httptest server, so the workflow can be exercised in CI without network
// access or shared accounts.
//
// # Future Improvements
//
// * Fixtures here call Gomega directly and so can only be used from within a
// running spec. The scenario logic itself lives in pkg/smoke and is shared
// with the foody-smoke command.
package api
