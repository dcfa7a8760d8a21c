package core

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentChecks caps the dispatcher's worker pool.
const maxConcurrentChecks = 3

// Check is a named, independent unit of work run by the dispatcher. Checks
// share no mutable state and have no ordering dependency on each other.
type Check struct {
	Name string
	Fn   func() (passed bool, message string, err error)
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// RunAll executes the checks on a bounded worker pool and joins all results
// before returning. Results arrive in completion order, not submission order.
// A check that returns an error or panics becomes a failing CheckResult with
// the error description and never prevents the other checks from completing.
// The overall result is the logical AND of every Passed flag.
func RunAll(checks []Check) ([]CheckResult, bool) {
	results := make([]CheckResult, 0, len(checks))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)

	for _, check := range checks {
		g.Go(func() error {
			res := runOne(check)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // check failures are result values, never group errors

	overall := true
	for _, r := range results {
		overall = overall && r.Passed
	}
	return results, overall
}

// runOne executes a single check, converting panics and errors into failing
// results.
func runOne(check Check) (res CheckResult) {
	res = CheckResult{Name: check.Name}
	defer func() {
		if r := recover(); r != nil {
			res.Passed = false
			res.Message = fmt.Sprintf("check panicked: %v", r)
		}
	}()

	passed, message, err := check.Fn()
	if err != nil {
		res.Passed = false
		res.Message = err.Error()
		if res.Message == "" {
			res.Message = "check failed"
		}
		return res
	}
	res.Passed = passed
	res.Message = message
	if !passed && res.Message == "" {
		res.Message = "check failed"
	}
	return res
}
