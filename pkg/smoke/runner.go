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

// Package smoke runs the Foody smoke workflow: a single login followed by
// seven ordered scenarios that share the identifier of the food created by
// the first one.
package smoke

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/nscale/foody-smoke/pkg/foody"
)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger for scenario progress.
func WithLogger(logger logr.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithScenarios replaces the default workflow.
func WithScenarios(scenarios ...Scenario) RunnerOption {
	return func(r *Runner) {
		r.scenarios = scenarios
	}
}

// WithState injects the cross-scenario state.
func WithState(state *State) RunnerOption {
	return func(r *Runner) {
		r.state = state
	}
}

// Runner authenticates once and then drives the scenarios in order.
// It is not safe for concurrent use.
type Runner struct {
	authenticator Authenticator
	connect       Connector
	api           API
	state         *State
	scenarios     []Scenario
	logger        logr.Logger
}

// NewRunner returns a runner that logs in with authenticator and builds the
// authenticated API with connect.
func NewRunner(authenticator Authenticator, connect Connector, options ...RunnerOption) *Runner {
	r := &Runner{
		authenticator: authenticator,
		connect:       connect,
		state:         &State{},
		scenarios:     Scenarios(),
		logger:        logr.Discard(),
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// NewClientRunner returns a runner for a Foody client.
func NewClientRunner(client *foody.Client, options ...RunnerOption) *Runner {
	connect := func(token string) API {
		return client.Authenticated(token)
	}

	return NewRunner(client, connect, options...)
}

// Setup logs in and builds the authenticated API. A missing token fails
// setup, so no scenario ever runs unauthenticated.
func (r *Runner) Setup(ctx context.Context, credentials foody.Credentials) error {
	token, err := r.authenticator.Authenticate(ctx, credentials)
	if err != nil {
		return fmt.Errorf("setting up smoke runner: %w", err)
	}

	if token == "" {
		return fmt.Errorf("setting up smoke runner: %w", foody.ErrMissingAccessToken)
	}

	r.api = r.connect(token)

	r.logger.Info("authenticated", "username", credentials.Username)

	return nil
}

// API returns the authenticated API, or nil before Setup.
func (r *Runner) API() API {
	return r.api
}

// State returns the cross-scenario state.
func (r *Runner) State() *State {
	return r.state
}

// RunScenario runs a single scenario against the shared state.
func (r *Runner) RunScenario(ctx context.Context, scenario Scenario) Result {
	result := Result{
		Order: scenario.Order,
		Name:  scenario.Name,
	}

	start := time.Now()

	if r.api == nil {
		result.Err = ErrNotSetUp
	} else {
		result.Err = scenario.Run(ctx, r.api, r.state)
	}

	result.Duration = time.Since(start)

	if result.Err != nil {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("%s: %w", scenario.Name, result.Err)

		r.logger.Info("scenario failed", "order", scenario.Order, "scenario", scenario.Name, "duration", result.Duration, "error", result.Err.Error())

		return result
	}

	result.Outcome = OutcomePassed

	r.logger.Info("scenario passed", "order", scenario.Order, "scenario", scenario.Name, "duration", result.Duration)

	return result
}

// Run executes every scenario in order. A failing scenario does not stop
// the run; later scenarios that depend on it fail in turn.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.api == nil {
		return nil, ErrNotSetUp
	}

	report := &Report{}

	for _, scenario := range r.scenarios {
		report.Results = append(report.Results, r.RunScenario(ctx, scenario))
	}

	return report, nil
}

// Teardown releases the client's connections.
func (r *Runner) Teardown() {
	if closer, ok := r.api.(interface{ Close() }); ok {
		closer.Close()
		return
	}

	if closer, ok := r.authenticator.(interface{ Close() }); ok {
		closer.Close()
	}
}
