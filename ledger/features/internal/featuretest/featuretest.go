package featuretest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

// FakeClock is a fixed instant in the middle of a UTC day.
var FakeClock = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

// FastRetries keeps retry loops in tests short.
func FastRetries() []shell.RetryOption {
	return []shell.RetryOption{
		shell.WithMaxAttempts(100),
		shell.WithBaseDelay(0),
		shell.WithJitterFactor(0),
	}
}

// Given appends events unconditionally.
func Given(t *testing.T, store *memoryengine.EventStore, events ...core.DomainEvent) {
	t.Helper()

	filter := eventstore.BuildEventFilter().MatchingAnyEvent()
	_, maxSequenceNumber, err := store.Query(context.Background(), filter)
	require.NoError(t, err)

	storableEvents, err := shell.StorableEventsFrom(events, uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), filter, maxSequenceNumber, storableEvents...))
}

// GivenAccount opens an account which earned lifetimeSteps today.
func GivenAccount(t *testing.T, store *memoryengine.EventStore, accountID core.AccountIDString, lifetimeSteps int) {
	t.Helper()

	Given(t, store, AccountEvents(accountID, lifetimeSteps, FakeClock.Add(-time.Hour))...)
}

// AccountEvents opens an account which earned lifetimeSteps on the day of at.
func AccountEvents(accountID core.AccountIDString, lifetimeSteps int, at time.Time) core.DomainEvents {
	events := core.DomainEvents{
		core.BuildAccountOpened(accountID, "Name of "+accountID, "avatar-"+accountID, at),
	}

	if lifetimeSteps > 0 {
		entry := core.StepEntry{Date: core.ToDateKey(at), Steps: lifetimeSteps, GoalReached: true}
		events = append(events, core.BuildDailyStepsRecorded(accountID, entry, lifetimeSteps, at))
	}

	return events
}

// AllEvents returns every stored event.
func AllEvents(t *testing.T, store *memoryengine.EventStore) core.DomainEvents {
	t.Helper()

	storableEvents, _, err := store.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	events, err := shell.DomainEventsFrom(storableEvents)
	require.NoError(t, err)

	return events
}

// EventTypes lists the event types in order.
func EventTypes(events core.DomainEvents) []string {
	eventTypes := make([]string, 0, len(events))
	for _, event := range events {
		eventTypes = append(eventTypes, event.EventType())
	}

	return eventTypes
}

// Balance projects the balance of the account from the store.
func Balance(t *testing.T, store *memoryengine.EventStore, accountID core.AccountIDString) core.Balance {
	t.Helper()

	return core.ProjectAccount(accountID, AllEvents(t, store)).Balance()
}

// GivenSquadOffer returns a partner offer pooled by squads.
func GivenSquadOffer(targetSteps int) core.SquadOffer {
	return core.SquadOffer{
		OfferID:      "spa-day",
		OfferTitle:   "Spa day for the squad",
		OfferPartner: "Wellness Inc",
		PartnerID:    "wellness",
		TargetSteps:  targetSteps,
	}
}

// SquadEvents creates a squad of the host with pending invitations, balance snapshots are zero.
func SquadEvents(
	squadID core.SquadIDString,
	hostID core.AccountIDString,
	targetSteps int,
	at time.Time,
	inviteeIDs ...core.AccountIDString,
) core.DomainEvents {

	events := core.DomainEvents{
		core.BuildSquadCreated(squadID, core.SquadMemberProfile{AccountID: hostID}, GivenSquadOffer(targetSteps), at),
	}

	for _, inviteeID := range inviteeIDs {
		events = append(events, core.BuildSquadMemberInvited(squadID, core.SquadMemberProfile{AccountID: inviteeID}, at))
	}

	return events
}

// ActiveSquadEvents creates a squad in which every invitee accepted.
func ActiveSquadEvents(
	squadID core.SquadIDString,
	hostID core.AccountIDString,
	targetSteps int,
	at time.Time,
	inviteeIDs ...core.AccountIDString,
) core.DomainEvents {

	events := SquadEvents(squadID, hostID, targetSteps, at, inviteeIDs...)
	for _, inviteeID := range inviteeIDs {
		events = append(events, core.BuildSquadInvitationAccepted(squadID, inviteeID, 0, at))
	}

	return events
}

// Squad projects the squad from the store at FakeClock.
func Squad(t *testing.T, store *memoryengine.EventStore, squadID core.SquadIDString) core.SquadState {
	t.Helper()

	squad, found := core.FindSquad(core.ProjectSquads(AllEvents(t, store), FakeClock), squadID)
	require.True(t, found)

	return squad
}
