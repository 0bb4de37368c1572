package shell

import (
	"time"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

// RetryMetrics is the execution metadata collected by RetryWithExponentialBackoff.
type RetryMetrics struct {
	Attempts         int
	TotalDelay       time.Duration
	LastErrorType    string
	RetriesExhausted bool
}

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes (idempotent, rejected) and retry metadata
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates that the command was already applied, nothing was appended.
	Idempotent bool

	// Rejected indicates a business rule violation, a failure event was appended as audit trail.
	Rejected bool

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType is one of "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded", "other".
	LastErrorType string

	// RetriesExhausted is true when all attempts failed with a retryable error.
	RetriesExhausted bool
}

// Execution lets feature results that embed HandlerResult satisfy CommandResult.
func (r HandlerResult) Execution() HandlerResult {
	return r
}

func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics)
}

func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.Idempotent = true

	return result
}

func NewRejectedResult(retryMetrics RetryMetrics) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.Rejected = true

	return result
}

// NewErrorResult is used when the handler returns an error but still reports retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics)
}

// ResultFor selects the HandlerResult matching the decision that was applied last.
func ResultFor(decision core.DecisionResult, retryMetrics RetryMetrics, err error) HandlerResult {
	switch {
	case err != nil:
		return NewErrorResult(retryMetrics)
	case decision.IsIdempotent():
		return NewIdempotentResult(retryMetrics)
	case decision.IsRejected():
		return NewRejectedResult(retryMetrics)
	default:
		return NewSuccessResult(retryMetrics)
	}
}

func fromRetryMetrics(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
