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

// Package foody provides an HTTP client for the Foody food-review API.
//
// # Separate Client Implementation
//
// The client is hand written rather than generated from the OpenAPI document
// in pkg/openapi. Any legitimate change to the consumed API must have a
// compensating change here, which keeps the smoke suite an independent check
// on the contract rather than a mirror of it.
//
// The client includes features tailored for smoke testing:
//   - W3C trace context propagation for request correlation
//   - request editors, used to attach bearer credentials after login
//   - direct access to HTTP status codes and raw response bodies
//   - optional response validation against the OpenAPI document
package foody
