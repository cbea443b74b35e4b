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

package openapi

import (
	"errors"
	"regexp"
)

var ErrInvalidFoodPath = errors.New("invalid patch path: must be one of /name, /description or /url")

var foodPathValidationRegex = regexp.MustCompile("^/(name|description|url)$")

// FoodPath is a JSON pointer into a food that a patch operation may target.
type FoodPath struct {
	Value string
}

func (p *FoodPath) UnmarshalText(text []byte) error {
	if !foodPathValidationRegex.Match(text) {
		return ErrInvalidFoodPath
	}

	*p = FoodPath{
		Value: string(text),
	}

	return nil
}
