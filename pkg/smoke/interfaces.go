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

	"github.com/nscale/foody-smoke/pkg/foody"
)

//go:generate go tool mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials foody.Credentials) (string, error)
}

// API is the set of food operations the scenarios drive.
type API interface {
	CreateFood(ctx context.Context, food foody.Food) (*foody.Response, error)
	EditFood(ctx context.Context, foodID string, operations []foody.PatchOperation) (*foody.Response, error)
	ListFoods(ctx context.Context) (*foody.Response, error)
	DeleteFood(ctx context.Context, foodID string) (*foody.Response, error)
}

// Connector returns an API that sends the token on every request.
type Connector func(token string) API
