package boundaries

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

var accountEventTypes = []string{
	core.AccountOpenedEventType,
	core.DailyStepsRecordedEventType,
	core.OfferRedeemedEventType,
	core.SquadRewardDebitedEventType,
	core.RedemptionCodeUsedEventType,
}

var squadEventTypes = []string{
	core.SquadCreatedEventType,
	core.SquadMemberInvitedEventType,
	core.SquadInvitationAcceptedEventType,
	core.SquadInvitationDeclinedEventType,
	core.SquadCancelledEventType,
	core.SquadStepsContributedEventType,
	core.SquadRewardRedeemedEventType,
}

var redemptionEventTypes = []string{
	core.OfferRedeemedEventType,
	core.SquadRewardRedeemedEventType,
	core.RedemptionCodeUsedEventType,
}

var friendshipEventTypes = []string{
	core.FriendshipStartedEventType,
	core.FriendshipEndedEventType,
}

var challengeEventTypes = []string{
	core.ChallengeJoinedEventType,
	core.ChallengeProgressRecordedEventType,
}

// Boundary is a value type, every method returns an extended copy.
type Boundary struct {
	built eventstore.CompletedFilterItemBuilder
}

func New() Boundary {
	return Boundary{}
}

// Accounts adds the wallet events of the accounts.
func (b Boundary) Accounts(accountIDs ...core.AccountIDString) Boundary {
	return b.item(accountEventTypes, "AccountID", accountIDs)
}

// Registrations adds only the opening of the accounts, enough to know they exist and how they are displayed.
func (b Boundary) Registrations(accountIDs ...core.AccountIDString) Boundary {
	return b.item([]string{core.AccountOpenedEventType}, "AccountID", accountIDs)
}

// Squads adds all events of the squads.
func (b Boundary) Squads(squadIDs ...core.SquadIDString) Boundary {
	return b.item(squadEventTypes, "SquadID", squadIDs)
}

// Memberships adds the events which make the accounts a member of a squad: hosting and being invited.
func (b Boundary) Memberships(accountIDs ...core.AccountIDString) Boundary {
	return b.
		item([]string{core.SquadCreatedEventType}, "HostID", accountIDs).
		item([]string{core.SquadMemberInvitedEventType}, "AccountID", accountIDs)
}

// RedemptionCode adds the redemptions carrying the code, which makes minting it unique.
func (b Boundary) RedemptionCode(code string) Boundary {
	return b.item([]string{core.OfferRedeemedEventType, core.SquadRewardRedeemedEventType}, "RedemptionCode", []string{code})
}

// Redemption adds the record and the usage of one redemption.
func (b Boundary) Redemption(redemptionID core.RedemptionIDString) Boundary {
	return b.item(redemptionEventTypes, "RedemptionID", []string{redemptionID})
}

// Redemptions adds all single and squad redemption records and their usage.
func (b Boundary) Redemptions() Boundary {
	b.built = b.next().AnyEventTypeOf(redemptionEventTypes[0], redemptionEventTypes[1:]...)

	return b
}

// AllAccounts adds the wallet events of every account.
func (b Boundary) AllAccounts() Boundary {
	b.built = b.next().AnyEventTypeOf(core.AccountOpenedEventType, core.DailyStepsRecordedEventType)

	return b
}

// Friendships adds every friendship event in which one of the accounts takes part.
func (b Boundary) Friendships(accountIDs ...core.AccountIDString) Boundary {
	return b.
		item(friendshipEventTypes, "AccountID1", accountIDs).
		item(friendshipEventTypes, "AccountID2", accountIDs)
}

// Friendship adds the events of the one friendship between the two accounts.
func (b Boundary) Friendship(accountID core.AccountIDString, friendID core.AccountIDString) Boundary {
	if accountID == "" || friendID == "" {
		return b
	}

	first, second := core.FriendPair(accountID, friendID)

	b.built = b.next().
		AnyEventTypeOf(friendshipEventTypes[0], friendshipEventTypes[1:]...).
		AndAllPredicatesOf(eventstore.P("AccountID1", first), eventstore.P("AccountID2", second))

	return b
}

// Challenges adds the participation events of the challenges.
func (b Boundary) Challenges(challengeIDs ...core.ChallengeIDString) Boundary {
	return b.item(challengeEventTypes, "ChallengeID", challengeIDs)
}

// ChallengeParticipant adds the participation events of one account in one challenge.
func (b Boundary) ChallengeParticipant(challengeID core.ChallengeIDString, accountID core.AccountIDString) Boundary {
	if challengeID == "" || accountID == "" {
		return b
	}

	b.built = b.next().
		AnyEventTypeOf(challengeEventTypes[0], challengeEventTypes[1:]...).
		AndAllPredicatesOf(eventstore.P("ChallengeID", challengeID), eventstore.P("AccountID", accountID))

	return b
}

// Finalize returns the filter. A boundary without items yields an empty filter, which matches all events.
func (b Boundary) Finalize() eventstore.Filter {
	if b.built == nil {
		return eventstore.BuildEventFilter().MatchingAnyEvent()
	}

	return b.built.Finalize()
}

// item skips empty ids, an item without ids is not added.
func (b Boundary) item(eventTypes []string, key string, values []string) Boundary {
	predicates := make([]eventstore.FilterPredicate, 0, len(values))
	for _, value := range values {
		if value != "" {
			predicates = append(predicates, eventstore.P(key, value))
		}
	}

	if len(predicates) == 0 {
		return b
	}

	b.built = b.next().
		AnyEventTypeOf(eventTypes[0], eventTypes[1:]...).
		AndAnyPredicateOf(predicates[0], predicates[1:]...)

	return b
}

func (b Boundary) next() eventstore.EmptyFilterItemBuilder {
	if b.built == nil {
		return eventstore.BuildEventFilter().Matching()
	}

	return b.built.OrMatching()
}
