package trip

import (
	"context"
	"strings"
	"time"
)

const (
	// maxModelAttempts bounds transport retries for a single model call.
	maxModelAttempts = 2
	// defaultRetryBackoff is multiplied by the attempt number before the next
	// try (1.5s, then 3s).
	defaultRetryBackoff = 1500 * time.Millisecond
)

// generateWithRetry invokes the model call up to maxModelAttempts times,
// waiting backoff*attempt between tries. Exhaustion is mapped to a
// GenerationError with a category derived from the last transport error.
func generateWithRetry(ctx context.Context, backoff time.Duration, call func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxModelAttempts; attempt++ {
		text, err := call(ctx)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt < maxModelAttempts {
			select {
			case <-ctx.Done():
				return "", &GenerationError{Category: FailureTimeout, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * backoff):
			}
		}
	}
	return "", &GenerationError{Category: categorizeModelError(lastErr), Err: lastErr}
}

// categorizeModelError maps a transport error onto a user-facing category by
// matching known substrings. Unrecognized errors fall back to
// FailureUnavailable.
func categorizeModelError(err error) FailureCategory {
	if err == nil {
		return FailureUnavailable
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "resource exhausted"):
		return FailureRateLimited
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "api_key"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "unauthenticated"),
		strings.Contains(msg, "permission"):
		return FailureAuthInvalid
	case strings.Contains(msg, "deadline"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "timed out"):
		return FailureTimeout
	default:
		return FailureUnavailable
	}
}
