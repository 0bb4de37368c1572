package boundaries_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore/memoryengine"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

var now = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func givenStored(t *testing.T, store *memoryengine.EventStore, events ...core.DomainEvent) {
	storableEvents, err := shell.StorableEventsFrom(events, uuid.New())
	require.NoError(t, err)

	_, maxSequenceNumber, err := store.Query(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent())
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), eventstore.BuildEventFilter().MatchingAnyEvent(), maxSequenceNumber, storableEvents...))
}

func givenSquad(squadID string, hostID string, inviteeIDs ...string) core.DomainEvents {
	offer := core.SquadOffer{OfferID: "offer-1", OfferTitle: "Team Lunch", TargetSteps: 20000}
	events := core.DomainEvents{core.BuildSquadCreated(squadID, core.SquadMemberProfile{AccountID: hostID}, offer, now)}

	for _, inviteeID := range inviteeIDs {
		events = append(events, core.BuildSquadMemberInvited(squadID, core.SquadMemberProfile{AccountID: inviteeID}, now))
	}

	return events
}

func Test_Boundary_Finalize_SkipsItemsWithoutIDs(t *testing.T) {
	filter := boundaries.New().Accounts("").Squads().Accounts("anna").Finalize()

	require.Len(t, filter.Items(), 1)
	assert.Contains(t, filter.Items()[0].EventTypes(), core.OfferRedeemedEventType)
	assert.Equal(t, []eventstore.FilterPredicate{eventstore.P("AccountID", "anna")}, filter.Items()[0].Predicates())
}

func Test_Boundary_Finalize_Memberships(t *testing.T) {
	filter := boundaries.New().Memberships("anna", "ben").Finalize()

	require.Len(t, filter.Items(), 2)
	assert.Equal(t, []string{core.SquadCreatedEventType}, filter.Items()[0].EventTypes())
	assert.Len(t, filter.Items()[0].Predicates(), 2)
	assert.Equal(t, []string{core.SquadMemberInvitedEventType}, filter.Items()[1].EventTypes())
}

func Test_Boundary_Finalize_FriendshipMatchesThePairOnly(t *testing.T) {
	filter := boundaries.New().Friendship("ben", "anna").Finalize()

	require.Len(t, filter.Items(), 1)
	assert.True(t, filter.Items()[0].AllPredicatesMustMatch())
	assert.Equal(
		t,
		[]eventstore.FilterPredicate{eventstore.P("AccountID1", "anna"), eventstore.P("AccountID2", "ben")},
		filter.Items()[0].Predicates(),
	)
}

func Test_Boundary_Finalize_ChallengeParticipantNeedsBothIDs(t *testing.T) {
	assert.True(t, boundaries.New().ChallengeParticipant("walk-10k", "").Finalize().IsEmpty())

	filter := boundaries.New().ChallengeParticipant("walk-10k", "anna").Finalize()

	require.Len(t, filter.Items(), 1)
	assert.True(t, filter.Items()[0].AllPredicatesMustMatch())
	assert.Contains(t, filter.Items()[0].EventTypes(), core.ChallengeProgressRecordedEventType)
}

func Test_Boundary_Finalize_FullScan(t *testing.T) {
	filter := boundaries.New().Finalize()

	assert.True(t, filter.IsEmpty())
}

func Test_LoadWithSquadsOf_LoadsAllEventsOfTheSquads(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	givenStored(t, store, givenSquad("squad-1", "anna", "ben")...)
	givenStored(t, store, givenSquad("squad-2", "carla", "dora")...)
	givenStored(t, store, core.BuildSquadInvitationAccepted("squad-1", "ben", 500, now))

	// act
	loaded, err := boundaries.LoadWithSquadsOf(context.Background(), store, boundaries.New().Accounts("ben"), "ben")

	// assert
	require.NoError(t, err)
	assert.Len(t, loaded.Events, 3)
	assert.Equal(t, []string{"squad-1"}, boundaries.SquadIDsOf(loaded.Events))

	squads := core.ProjectSquads(loaded.Events, now)
	require.Len(t, squads, 1)
	assert.Equal(t, core.SquadStatusActive, squads[0].Status)
}

type interleavingQuerier struct {
	store   *memoryengine.EventStore
	t       *testing.T
	queries int
}

func (q *interleavingQuerier) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	q.queries++
	if q.queries == 2 {
		givenStored(q.t, q.store, givenSquad("squad-late", "anna")...)
	}

	return q.store.Query(ctx, filter)
}

func Test_LoadWithSquadsOf_ReportsSquadsCreatedBetweenThePhases(t *testing.T) {
	// arrange
	store := memoryengine.NewEventStore()
	querier := &interleavingQuerier{store: store, t: t}

	// act
	_, err := boundaries.LoadWithSquadsOf(context.Background(), querier, boundaries.New().Accounts("anna"), "anna")

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
}
