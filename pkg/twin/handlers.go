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
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nscale/foody-smoke/pkg/openapi"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authentication struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccessToken string `json:"accessToken,omitempty"`
}

type foodWrite struct {
	Name        string `json:"Name"`
	Description string `json:"Description"`
	URL         string `json:"Url"`
}

type patchOperation struct {
	Path openapi.FoodPath `json:"path"`
}

type message struct {
	Msg    string `json:"msg"`
	FoodID string `json:"foodId,omitempty"`
}

type problem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Add("Cache-Control", "no-cache")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &message{Msg: msg})
}

func writeProblem(w http.ResponseWriter, field, detail string) {
	writeJSON(w, http.StatusBadRequest, &problem{
		Title:  MessageValidationFailed,
		Status: http.StatusBadRequest,
		Errors: map[string][]string{
			field: {detail},
		},
	})
}

func (t *Twin) authenticate(w http.ResponseWriter, r *http.Request) {
	request := &credentials{}

	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeProblem(w, "body", err.Error())
		return
	}

	if !t.allowed(request) {
		writeMessage(w, http.StatusUnauthorized, MessageInvalidCredentials)
		return
	}

	result := &authentication{
		Username: request.Username,
		Password: request.Password,
	}

	if !t.omitAccessToken {
		result.AccessToken = t.store.IssueToken(request.Username)
	}

	writeJSON(w, http.StatusOK, result)
}

func (t *Twin) allowed(request *credentials) bool {
	if request.Username == "" || request.Password == "" {
		return false
	}

	if len(t.users) == 0 {
		return true
	}

	password, ok := t.users[request.Username]

	return ok && password == request.Password
}

func (t *Twin) createFood(w http.ResponseWriter, r *http.Request) {
	request := &foodWrite{}

	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		writeProblem(w, "body", err.Error())
		return
	}

	food, err := t.store.Create(request.Name, request.Description, request.URL)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, &message{
		Msg:    MessageCreated,
		FoodID: food.ID,
	})
}

func (t *Twin) editFood(w http.ResponseWriter, r *http.Request) {
	foodID := chi.URLParam(r, "foodId")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeProblem(w, "body", err.Error())
		return
	}

	var operations []patchOperation

	if err := json.Unmarshal(body, &operations); err != nil {
		writeProblem(w, "path", err.Error())
		return
	}

	if _, err := t.store.Patch(foodID, body); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeMessage(w, http.StatusNotFound, MessageNotFound)
			return
		}

		writeProblem(w, "patch", err.Error())

		return
	}

	writeMessage(w, http.StatusOK, MessageEdited)
}

func (t *Twin) listFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := t.store.List()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, foods)
}

func (t *Twin) deleteFood(w http.ResponseWriter, r *http.Request) {
	if err := t.store.Delete(chi.URLParam(r, "foodId")); err != nil {
		writeMessage(w, http.StatusBadRequest, MessageDeleteFailed)
		return
	}

	writeMessage(w, http.StatusOK, MessageDeleted)
}
