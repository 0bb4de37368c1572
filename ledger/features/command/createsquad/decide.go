package createsquad

import (
	"slices"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether a squad is created.
//
// Business Rules:
//
//	GIVEN: A host account and the accounts of the invitees
//	WHEN: CreateSquad command is received
//	THEN: SquadCreated event and one SquadMemberInvited event per existing invitee are generated
//	NOT FOUND: ErrAccountNotFound if the host has no account
//	ERROR: InvalidAmount if the target steps are not positive
//	ERROR: NotSquadHost if the squad id already exists with another host
//	ERROR: AlreadyInSquad if the host is a member of a pending or active squad, open invitations included
//	IDEMPOTENCY: If the host already created a squad with this id, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	squads := core.ProjectSquads(history, command.OccurredAt)
	if existing, exists := core.FindSquad(squads, command.SquadID); exists {
		if existing.HostID != command.HostID {
			return reject(command, core.BuildFailure(core.FailureNotSquadHost, core.ReasonSquadIDTaken))
		}

		return core.IdempotentDecision()
	}

	host := core.ProjectAccount(command.HostID, history)
	if !host.Exists {
		return core.NotFoundDecision(core.ErrAccountNotFound)
	}

	if command.Offer.TargetSteps <= 0 {
		return reject(command, core.BuildFailure(core.FailureInvalidAmount, core.ReasonTargetMustBePositive))
	}

	if _, inSquad := core.NonTerminalSquadOf(command.HostID, squads); inSquad {
		return reject(command, core.BuildFailure(core.FailureAlreadyInSquad, core.ReasonAlreadyInActiveSquad))
	}

	events := core.DomainEvents{
		core.BuildSquadCreated(command.SquadID, profileOf(host), command.Offer, command.OccurredAt),
	}

	for _, inviteeID := range inviteesOf(command) {
		invitee := core.ProjectAccount(inviteeID, history)
		if !invitee.Exists {
			continue
		}

		events = append(events, core.BuildSquadMemberInvited(command.SquadID, profileOf(invitee), command.OccurredAt))
	}

	return core.SuccessDecision(events...)
}

// MissingInvitees returns the invitees without an account, they are not invited.
func MissingInvitees(history core.DomainEvents, command Command) []core.AccountIDString {
	var missing []core.AccountIDString

	for _, inviteeID := range inviteesOf(command) {
		if !core.ProjectAccount(inviteeID, history).Exists {
			missing = append(missing, inviteeID)
		}
	}

	return missing
}

func reject(command Command, failure core.Failure) core.DecisionResult {
	return core.ErrorDecision(
		core.BuildSquadOperationFailed(
			core.CreatingSquadFailedEventType,
			command.SquadID,
			command.HostID,
			failure,
			command.OccurredAt,
		),
		failure,
	)
}

// inviteesOf removes empty ids, duplicates and the host, keeping the order of the invite list.
func inviteesOf(command Command) []core.AccountIDString {
	invitees := make([]core.AccountIDString, 0, len(command.InviteeIDs))

	for _, inviteeID := range command.InviteeIDs {
		if inviteeID == "" || inviteeID == command.HostID || slices.Contains(invitees, inviteeID) {
			continue
		}

		invitees = append(invitees, inviteeID)
	}

	return invitees
}

func profileOf(account core.AccountState) core.SquadMemberProfile {
	return core.SquadMemberProfile{
		AccountID:     account.ID,
		DisplayName:   account.DisplayName,
		Avatar:        account.Avatar,
		WalletBalance: account.Balance().Available,
	}
}

// BuildBoundary creates the boundary for the squad and the wallets of the host and the invitees.
// The memberships of the host are added by boundaries.LoadWithSquadsOf.
func BuildBoundary(command Command) boundaries.Boundary {
	accountIDs := append([]core.AccountIDString{command.HostID}, inviteesOf(command)...)

	return boundaries.New().Accounts(accountIDs...).Squads(command.SquadID)
}

// BuildEventFilter creates the filter of BuildBoundary without the memberships of the host.
func BuildEventFilter(command Command) eventstore.Filter {
	return BuildBoundary(command).Finalize()
}
