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
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// requestLog logs one line per request once the handler has finished.
func (t *Twin) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		t.logger.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start), "requestID", chimw.GetReqID(r.Context()))
	})
}

// requireBearer rejects requests without a token issued by this twin.
func (t *Twin) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" || !t.store.ValidToken(token) {
			writeMessage(w, http.StatusUnauthorized, MessageUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// validate checks requests against the OpenAPI document.
func (t *Twin) validate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := t.schema.FindRoute(r); err != nil {
			writeMessage(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}

		if err := t.schema.ValidateRequest(r); err != nil {
			t.logger.V(1).Info("request validation failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
			writeProblem(w, "request", err.Error())

			return
		}

		next.ServeHTTP(w, r)
	})
}
