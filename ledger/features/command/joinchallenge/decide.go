package joinchallenge

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether an account joins a challenge.
//
// Business Rules:
//
//	GIVEN: An opened account and a challenge it has not joined
//	WHEN: JoinChallenge command is received
//	THEN: ChallengeJoined event is generated, the participant starts active with no progress
//	NOT FOUND: ErrAccountNotFound if the account was never opened
//	ERROR: InvalidAmount if the goal is not positive
//	ERROR: ChallengeNotActive if the challenge ended
//	IDEMPOTENCY: If the account already joined, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	challenge := command.Challenge

	if !core.ProjectAccount(command.AccountID, history).Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	participants := core.ProjectChallengeParticipants(challenge.ChallengeID, history, command.OccurredAt)
	if _, joined := core.FindChallengeParticipant(participants, command.AccountID); joined {
		return core.IdempotentDecision()
	}

	if challenge.Goal <= 0 {
		return reject(command, core.BuildFailure(core.FailureInvalidAmount, core.ReasonGoalMustBePositive))
	}

	if !challenge.EndsAt.IsZero() && !command.OccurredAt.Before(challenge.EndsAt) {
		return reject(command, core.BuildFailure(core.FailureChallengeNotActive, core.ReasonChallengeEnded))
	}

	return core.SuccessDecision(
		core.BuildChallengeJoined(command.AccountID, challenge, command.OccurredAt),
	)
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildChallengeOperationFailed(
			core.JoiningChallengeFailedEventType,
			command.Challenge.ChallengeID,
			command.AccountID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// BuildEventFilter creates the filter for the registration of the account and its participation in the challenge.
func BuildEventFilter(challengeID core.ChallengeIDString, accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Registrations(accountID).ChallengeParticipant(challengeID, accountID).Finalize()
}
