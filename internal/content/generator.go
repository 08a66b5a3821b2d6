// Package content is the boundary to the external text-generation service.
// Every call returns a Result; callers substitute a fixed fallback string
// for anything other than success, so generation failures never surface
// as errors to the heir or advisor.
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator produces text for a prompt. Implementations must honor ctx.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Status classifies the outcome of a generation call.
type Status int

const (
	// StatusOK means Text holds usable generated text.
	StatusOK Status = iota
	// StatusUnavailable means no generator is configured (simulation mode).
	StatusUnavailable
	// StatusFailed means the generator errored, timed out, or returned nothing usable.
	StatusFailed
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ErrEmptyResponse is the Result error when the generator returned only whitespace.
var ErrEmptyResponse = errors.New("content: empty response")

// Result is the outcome of one generation call.
type Result struct {
	Status Status
	Text   string
	Err    error
}

// Or returns the generated text on success and fallback otherwise.
func (r Result) Or(fallback string) string {
	if r.Status == StatusOK {
		return r.Text
	}
	return fallback
}

// Call runs gen with prompt, bounded by timeout when timeout > 0. A nil
// generator yields StatusUnavailable without blocking.
func Call(ctx context.Context, gen Generator, prompt string, timeout time.Duration) Result {
	if gen == nil {
		return Result{Status: StatusUnavailable}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return Result{Status: StatusFailed, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Status: StatusFailed, Err: ErrEmptyResponse}
	}
	return Result{Status: StatusOK, Text: text}
}
