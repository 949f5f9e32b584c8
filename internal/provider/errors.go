// Package provider holds the error vocabulary shared by market data
// providers and the fallback orchestrator above them.
package provider

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRateLimited marks an explicit upstream 429. It is a normal failure
	// for fallback purposes, but the boundary layer maps it to a distinct
	// retry-after response.
	ErrRateLimited = errors.New("rate limited")

	// ErrNotFound means the coin could not be resolved by the provider.
	ErrNotFound = errors.New("coin not found")
)

// Failure records why a single provider attempt failed, tagged with the
// provider name so aggregated errors stay auditable.
type Failure struct {
	Provider string
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Provider, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// AllFailedError is returned when every provider in the fallback chain
// failed. It concatenates each provider's cause.
type AllFailedError struct {
	Failures []Failure
}

func (e *AllFailedError) Error() string {
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	return "all providers failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual failures so errors.Is can match
// ErrRateLimited or ErrNotFound through the aggregate.
func (e *AllFailedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i := range e.Failures {
		errs[i] = e.Failures[i]
	}
	return errs
}

// RateLimited reports whether any provider failed on an upstream rate limit.
func (e *AllFailedError) RateLimited() bool {
	for _, f := range e.Failures {
		if errors.Is(f.Err, ErrRateLimited) {
			return true
		}
	}
	return false
}

// NotFound reports whether every provider answered "unknown coin" rather
// than erroring out.
func (e *AllFailedError) NotFound() bool {
	if len(e.Failures) == 0 {
		return false
	}
	for _, f := range e.Failures {
		if !errors.Is(f.Err, ErrNotFound) {
			return false
		}
	}
	return true
}
