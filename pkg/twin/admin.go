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
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// state is the body of the admin state endpoints.
type state struct {
	Foods []Food `json:"foods"`
}

// adminRoutes control the twin from tests. They bypass authentication and
// contract validation.
func (t *Twin) adminRoutes(r chi.Router) {
	r.Get("/admin/health", t.health)
	r.Post("/admin/reset", t.reset)
	r.Get("/admin/state", t.getState)
	r.Post("/admin/state", t.loadState)
}

func (t *Twin) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (t *Twin) reset(w http.ResponseWriter, r *http.Request) {
	t.store.Reset()

	t.logger.Info("state reset")

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (t *Twin) getState(w http.ResponseWriter, r *http.Request) {
	foods, err := t.store.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, &state{Foods: foods})
}

func (t *Twin) loadState(w http.ResponseWriter, r *http.Request) {
	request := &state{}

	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := t.store.Load(request.Foods); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	t.logger.Info("state loaded", "foods", len(request.Foods))

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}
