package genai

import (
	"errors"
	"fmt"
)

// RateLimitedError indicates the provider returned a quota error (429).
// It is terminal for the whole fallback sequence: remaining candidate models
// are not tried.
type RateLimitedError struct {
	Model string
	Err   error
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited by model %s: %v", e.Model, e.Err)
}

func (e *RateLimitedError) Unwrap() error { return e.Err }

// NoModelAvailableError indicates every candidate model was exhausted without
// producing a usable response.
type NoModelAvailableError struct {
	Models []string
}

func (e *NoModelAvailableError) Error() string {
	return fmt.Sprintf("no usable response from any of %d candidate models", len(e.Models))
}

// modelNotFoundError is the per-attempt signal for a 404 response; the
// fallback loop continues with the next candidate.
type modelNotFoundError struct {
	Model string
}

func (e *modelNotFoundError) Error() string {
	return fmt.Sprintf("model %s not found", e.Model)
}

// IsRateLimited reports whether err carries a provider quota signal.
func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}
