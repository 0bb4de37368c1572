package recordchallengeprogress

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether the progress of a participant changes.
//
// Business Rules:
//
//	GIVEN: An active participant of the challenge
//	WHEN: RecordChallengeProgress command is received
//	THEN: ChallengeProgressRecorded event is generated with the percent of the goal capped at 100
//	THEN: The participation completes once the progress reaches the goal
//	ERROR: NotChallengeParticipant if the account did not join
//	ERROR: ChallengeNotActive if the challenge ended before the goal was reached
//	ERROR: InvalidAmount if the progress is negative
//	IDEMPOTENCY: If the participation is completed or the progress is unchanged, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	participants := core.ProjectChallengeParticipants(command.ChallengeID, history, command.OccurredAt)

	participant, joined := core.FindChallengeParticipant(participants, command.AccountID)
	if !joined {
		return reject(command, core.BuildFailure(core.FailureNotChallengeParticipant, core.ReasonJoinChallengeFirst))
	}

	if participant.Status == core.ChallengeStatusCompleted {
		return core.IdempotentDecision()
	}

	if participant.Status == core.ChallengeStatusFailed {
		return reject(command, core.BuildFailure(core.FailureChallengeNotActive, core.ReasonChallengeEnded))
	}

	if command.Progress < 0 {
		return reject(command, core.BuildFailure(core.FailureInvalidAmount, core.ReasonProgressNotNegative))
	}

	if command.Progress == participant.CurrentProgress {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildChallengeProgressRecorded(participant, command.Progress, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildChallengeOperationFailed(
			core.RecordingChallengeProgressFailedEventType,
			command.ChallengeID,
			command.AccountID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// BuildEventFilter creates the filter for the participation of the account in the challenge.
func BuildEventFilter(challengeID core.ChallengeIDString, accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().ChallengeParticipant(challengeID, accountID).Finalize()
}
