package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// DecisionResult should only be constructed with IdempotentDecision, SuccessDecision, ErrorDecision
// or NotFoundDecision.
type DecisionResult struct {
	Outcome string // "idempotent", "success", "error", or "not_found"
	Events  DomainEvents
	Failure *Failure
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
	notFoundOutcome   = "not_found"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision creates a DecisionResult with the events to append, which are appended atomically.
func SuccessDecision(events ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Events:  events,
	}
}

// ErrorDecision creates a DecisionResult for a business rule violation.
// The error event is appended as audit trail, the failure is reported to the caller.
func ErrorDecision(event DomainEvent, failure Failure) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Events:  DomainEvents{event},
		Failure: &failure,
	}
}

// NotFoundDecision creates a DecisionResult for a command addressing a missing account, squad or redemption.
// Nothing is appended, the handler returns err.
func NotFoundDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: notFoundOutcome,
		Err:     err,
	}
}

// HasEventsToAppend returns true if there are events to append to the event store.
func (r DecisionResult) HasEventsToAppend() bool {
	return (r.Outcome == successOutcome || r.Outcome == errorOutcome) && len(r.Events) > 0
}

// IsIdempotent returns true if the command was already applied.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// IsRejected returns true if a business rule was violated.
func (r DecisionResult) IsRejected() bool {
	return r.Outcome == errorOutcome
}
