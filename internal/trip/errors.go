package trip

import (
	"fmt"
)

// ParseError indicates that no JSON object or array could be located in the
// model's raw output. It triggers one repair round-trip.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return "no JSON object found in model response"
}

// SchemaError indicates JSON-shaped output that violates a plan invariant.
// Field is the path of the first offending field. It triggers one repair
// round-trip.
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// InputError carries a model-emitted sentinel such as
// {"error": "Enter a valid source"}. It short-circuits the pipeline before
// schema validation and must be surfaced to the caller verbatim.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// FailureCategory is the user-facing classification of a model transport
// failure, derived by substring matching on the underlying error text.
type FailureCategory string

const (
	FailureRateLimited FailureCategory = "rate_limited"
	FailureAuthInvalid FailureCategory = "auth_invalid"
	FailureTimeout     FailureCategory = "timeout"
	FailureUnavailable FailureCategory = "unavailable"
	// FailureInvalidPlan means the repair round-trip was exhausted without a
	// schema-valid plan.
	FailureInvalidPlan FailureCategory = "invalid_plan"
)

// UserMessage returns the friendly message shown to the caller for this
// category.
func (c FailureCategory) UserMessage() string {
	switch c {
	case FailureRateLimited:
		return "The travel assistant is receiving too many requests right now. Please try again in a minute."
	case FailureAuthInvalid:
		return "The travel assistant's API credentials were rejected. Please check the configured API key."
	case FailureTimeout:
		return "The travel assistant took too long to respond. Please try again."
	case FailureInvalidPlan:
		return "The travel assistant could not produce a valid plan for this trip. Please try again."
	default:
		return "The travel assistant is temporarily unavailable. Please try again later."
	}
}

// GenerationError is fatal to the current request: retries and the repair
// round-trip are exhausted. It is surfaced as a user-facing message, never a
// crash.
type GenerationError struct {
	Category FailureCategory
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Category, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message to present to the caller.
func (e *GenerationError) UserMessage() string {
	return e.Category.UserMessage()
}
