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
	"context"
	"fmt"
	"net/http"

	"github.com/nscale/foody-smoke/pkg/foody"
)

// Expected response messages.
const (
	DeletedMessage      = "Deleted successfully!"
	NotFoundMessage     = "No food revues..."
	DeleteFailedMessage = "Unable to delete this food revue!"
)

// ScenarioFunc is one independently asserted step of the workflow.
type ScenarioFunc func(ctx context.Context, api API, state *State) error

// Scenario is a named, ordered ScenarioFunc.
type Scenario struct {
	Order int
	Name  string
	Run   ScenarioFunc
}

// Scenarios returns the workflow in the order it must run.
func Scenarios() []Scenario {
	return []Scenario{
		{Order: 1, Name: "create food", Run: CreateFood},
		{Order: 2, Name: "edit food title", Run: EditFoodTitle},
		{Order: 3, Name: "list all foods", Run: ListFoods},
		{Order: 4, Name: "delete food", Run: DeleteFood},
		{Order: 5, Name: "create food without required fields", Run: CreateFoodWithoutRequiredFields},
		{Order: 6, Name: "edit non-existing food", Run: EditNonExistingFood},
		{Order: 7, Name: "delete non-existing food", Run: DeleteNonExistingFood},
	}
}

// CreateFood creates a food, expects 201 and records the new identifier.
func CreateFood(ctx context.Context, api API, state *State) error {
	resp, err := api.CreateFood(ctx, NewFoodPayload().Build())
	if err != nil {
		return err
	}

	if err := foody.ExpectStatus(resp, http.StatusCreated); err != nil {
		return err
	}

	result, err := resp.APIResponse()
	if err != nil {
		return err
	}

	if result.FoodID == "" {
		return fmt.Errorf("%w: create response carried no foodId: %s", ErrNoFoodID, resp.String())
	}

	state.FoodID = result.FoodID

	return nil
}

// EditFoodTitle renames the recorded food and expects 200.
func EditFoodTitle(ctx context.Context, api API, state *State) error {
	foodID, err := state.RequireFoodID()
	if err != nil {
		return err
	}

	resp, err := api.EditFood(ctx, foodID, RenamePatch(UpdatedFoodName))
	if err != nil {
		return err
	}

	return foody.ExpectStatus(resp, http.StatusOK)
}

// ListFoods expects 200 and a non-empty body.
func ListFoods(ctx context.Context, api API, _ *State) error {
	resp, err := api.ListFoods(ctx)
	if err != nil {
		return err
	}

	if err := foody.ExpectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	return foody.ExpectNonEmptyBody(resp)
}

// DeleteFood deletes the recorded food and expects the confirmation message.
func DeleteFood(ctx context.Context, api API, state *State) error {
	foodID, err := state.RequireFoodID()
	if err != nil {
		return err
	}

	resp, err := api.DeleteFood(ctx, foodID)
	if err != nil {
		return err
	}

	if err := foody.ExpectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	return foody.ExpectBodyContains(resp, DeletedMessage)
}

// CreateFoodWithoutRequiredFields posts an empty name and description and
// expects 400.
func CreateFoodWithoutRequiredFields(ctx context.Context, api API, _ *State) error {
	payload := NewFoodPayload().
		WithName("").
		WithDescription("").
		WithoutURL().
		Build()

	resp, err := api.CreateFood(ctx, payload)
	if err != nil {
		return err
	}

	return foody.ExpectStatus(resp, http.StatusBadRequest)
}

// EditNonExistingFood expects 404 and the not found message.
func EditNonExistingFood(ctx context.Context, api API, _ *State) error {
	resp, err := api.EditFood(ctx, NonExistingFoodID, RenamePatch(MissingFoodName))
	if err != nil {
		return err
	}

	if err := foody.ExpectStatus(resp, http.StatusNotFound); err != nil {
		return err
	}

	return foody.ExpectBodyContains(resp, NotFoundMessage)
}

// DeleteNonExistingFood expects 400 and the delete failure message.
func DeleteNonExistingFood(ctx context.Context, api API, _ *State) error {
	resp, err := api.DeleteFood(ctx, NonExistingFoodID)
	if err != nil {
		return err
	}

	if err := foody.ExpectStatus(resp, http.StatusBadRequest); err != nil {
		return err
	}

	return foody.ExpectBodyContains(resp, DeleteFailedMessage)
}
