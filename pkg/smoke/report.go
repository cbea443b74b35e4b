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
	"time"
)

// Outcome is the verdict of a scenario.
type Outcome string

const (
	OutcomePassed Outcome = "passed"
	OutcomeFailed Outcome = "failed"
)

// Result records one scenario run.
type Result struct {
	Order    int
	Name     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Report aggregates the results of a run in execution order.
type Report struct {
	Results []Result
}

// Failed returns the failed results.
func (r *Report) Failed() []Result {
	var failed []Result

	for _, result := range r.Results {
		if result.Outcome == OutcomeFailed {
			failed = append(failed, result)
		}
	}

	return failed
}

// Passed reports whether every scenario passed.
func (r *Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Err joins the errors of all failed scenarios.
func (r *Report) Err() error {
	var errs []error

	for _, result := range r.Failed() {
		errs = append(errs, result.Err)
	}

	return errors.Join(errs...)
}

// Duration is the sum of all scenario durations.
func (r *Report) Duration() time.Duration {
	var total time.Duration

	for _, result := range r.Results {
		total += result.Duration
	}

	return total
}

// Summary returns a one line description of the run.
func (r *Report) Summary() string {
	failed := len(r.Failed())

	return fmt.Sprintf("%d scenarios, %d passed, %d failed in %s", len(r.Results), len(r.Results)-failed, failed, r.Duration().Round(time.Millisecond))
}
