package core

import (
	"fmt"
)

// FailureCode classifies a business rule violation.
type FailureCode = string

const (
	FailureUserNotFound             FailureCode = "UserNotFound"
	FailureInsufficientBalance      FailureCode = "InsufficientBalance"
	FailureDailyLimitExceeded       FailureCode = "DailyLimitExceeded"
	FailureAlreadyInSquad           FailureCode = "AlreadyInSquad"
	FailureNotSquadHost             FailureCode = "NotSquadHost"
	FailureSquadNotActive           FailureCode = "SquadNotActive"
	FailureMembersPending           FailureCode = "MembersPending"
	FailureInsufficientSquadBalance FailureCode = "InsufficientSquadBalance"
	FailureSquadStepsIncomplete     FailureCode = "SquadStepsIncomplete"
	FailureAlreadyRedeemed          FailureCode = "AlreadyRedeemed"
	FailureNotSquadMember           FailureCode = "NotSquadMember"
	FailureInvalidAmount            FailureCode = "InvalidAmount"
	FailureRedemptionNotActive      FailureCode = "RedemptionNotActive"
	FailureInvalidFriend            FailureCode = "InvalidFriend"
	FailureChallengeNotActive       FailureCode = "ChallengeNotActive"
	FailureNotChallengeParticipant  FailureCode = "NotChallengeParticipant"
)

const (
	ReasonUserNotFound          = "User not found"
	ReasonDailyLimitReached     = "Daily redemption limit reached (10 per day)"
	ReasonOnlyHostCanRedeem     = "Only the squad creator can redeem this reward"
	ReasonOnlyHostCanCancel     = "Only the squad creator can cancel this squad"
	ReasonSquadPending          = "Waiting for all members to join"
	ReasonSquadCancelled        = "Squad was cancelled"
	ReasonSquadExpired          = "Squad has expired"
	ReasonSquadCompleted        = "Squad already redeemed"
	ReasonSquadRewardRedeemed   = "Squad reward already redeemed"
	ReasonAlreadyInActiveSquad  = "You're already in an active squad. Complete or cancel it first."
	ReasonAlreadyInAnotherSquad = "You're already in another squad. Complete or cancel it first."
	ReasonNotSquadMember        = "You're not a member of this squad"
	ReasonSquadIDTaken          = "A squad with this id belongs to another host"
	ReasonInvitationNotPending  = "There is no open invitation for you in this squad"
	ReasonOnlyActiveMembers     = "Only members who joined the squad can contribute steps"
	ReasonStepsMustBePositive   = "Steps must be a positive number"
	ReasonTargetMustBePositive  = "Target steps must be a positive number"
	ReasonRedemptionAlreadyUsed = "Redemption code was already used"
	ReasonRedemptionExpired     = "Redemption code has expired"
	ReasonCannotFriendYourself  = "You can't add yourself as a friend"
	ReasonChallengeEnded        = "Challenge has ended"
	ReasonJoinChallengeFirst    = "Join the challenge first"
	ReasonGoalMustBePositive    = "Challenge goal must be a positive number"
	ReasonProgressNotNegative   = "Progress must not be negative"
)

// Failure is a business rule violation with a human-readable reason.
type Failure struct {
	Code    FailureCode
	Message string
}

func BuildFailure(code FailureCode, message string) Failure {
	return Failure{Code: code, Message: message}
}

func InsufficientBalanceReason(required int, available int) string {
	return fmt.Sprintf("Need %s steps, you have %s", FormatSteps(required), FormatSteps(available))
}

func MembersPendingReason(pendingCount int) string {
	return fmt.Sprintf("%d member(s) haven't joined yet", pendingCount)
}

func InsufficientSquadBalanceReason(target int, total int) string {
	return fmt.Sprintf("Squad needs %s total steps in wallets. Currently have %s", FormatSteps(target), FormatSteps(total))
}

func SquadStepsIncompleteReason(remaining int) string {
	return fmt.Sprintf("Squad needs %s more steps collected", FormatSteps(remaining))
}
