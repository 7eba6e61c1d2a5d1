package aiquota

import "errors"

// ErrQuotaExhausted is returned when a session has no AI credits remaining
// for the current month.
var ErrQuotaExhausted = errors.New("monthly AI quota exhausted")

// DefaultCredits is the number of plan/chat model calls granted per month.
const DefaultCredits = 50
