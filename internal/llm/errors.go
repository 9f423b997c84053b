package llm

import "errors"

var (
	// ErrGeneration marks model output that could not be turned into the requested shape.
	ErrGeneration = errors.New("unusable model output")
	// ErrTruncated marks a completion the provider cut off at its length limit.
	ErrTruncated = errors.New("model response truncated")
	// ErrUpstream marks a provider that was unreachable or answered with an error.
	ErrUpstream = errors.New("completion provider error")
)
