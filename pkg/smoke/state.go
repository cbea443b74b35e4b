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
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned when required settings are missing or invalid.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNoFoodID is returned by scenarios that need a created food when
	// none has been recorded.
	ErrNoFoodID = errors.New("no food identifier recorded")

	// ErrNotSetUp is returned when scenarios are run before Setup succeeded.
	ErrNotSetUp = errors.New("runner is not set up")
)

// State is the cross-scenario context. Scenarios receive it explicitly so
// any of them can run in isolation against injected state.
type State struct {
	// FoodID is the identifier of the last food created by the workflow.
	FoodID string
}

// RequireFoodID returns the recorded identifier or ErrNoFoodID.
func (s *State) RequireFoodID() (string, error) {
	if s.FoodID == "" {
		return "", fmt.Errorf("%w: create food must pass first", ErrNoFoodID)
	}

	return s.FoodID, nil
}
