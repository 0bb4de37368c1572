package boundaries

import (
	"context"
	"slices"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

// EventQuerier is the read side of the event store.
type EventQuerier interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// Loaded is the outcome of a boundary query, Filter must be used for the append.
type Loaded struct {
	Filter            eventstore.Filter
	Events            core.DomainEvents
	MaxSequenceNumber eventstore.MaxSequenceNumberUint
}

// Load queries the filter and maps the events.
func Load(ctx context.Context, store EventQuerier, filter eventstore.Filter) (Loaded, error) {
	storableEvents, maxSequenceNumber, err := store.Query(ctx, filter)
	if err != nil {
		return Loaded{}, err
	}

	events, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return Loaded{}, err
	}

	return Loaded{Filter: filter, Events: events, MaxSequenceNumber: maxSequenceNumber}, nil
}

// LoadWithSquadsOf queries in two phases. The first phase finds the squads the accounts host or were invited to,
// the second one queries the given boundary extended with the memberships and all events of those squads.
// A membership of a squad unknown to the first phase means a squad was created in between,
// this is reported as eventstore.ErrConcurrencyConflict so that the command is retried.
func LoadWithSquadsOf(
	ctx context.Context,
	store EventQuerier,
	boundary Boundary,
	accountIDs ...core.AccountIDString,
) (Loaded, error) {

	memberships, err := Load(ctx, store, New().Memberships(accountIDs...).Finalize())
	if err != nil {
		return Loaded{}, err
	}

	squadIDs := SquadIDsOf(memberships.Events)

	loaded, err := Load(ctx, store, boundary.Memberships(accountIDs...).Squads(squadIDs...).Finalize())
	if err != nil {
		return Loaded{}, err
	}

	for _, squadID := range SquadIDsOf(loaded.Events) {
		if !slices.Contains(squadIDs, squadID) && isMembershipOf(loaded.Events, squadID, accountIDs) {
			return Loaded{}, eventstore.ErrConcurrencyConflict
		}
	}

	return loaded, nil
}

// SquadIDsOf returns the ids of the squads created or invited to in events, in order of appearance.
func SquadIDsOf(events core.DomainEvents) []core.SquadIDString {
	var squadIDs []core.SquadIDString

	for _, event := range events {
		var squadID core.SquadIDString

		switch e := event.(type) {
		case core.SquadCreated:
			squadID = e.SquadID
		case core.SquadMemberInvited:
			squadID = e.SquadID
		default:
			continue
		}

		if !slices.Contains(squadIDs, squadID) {
			squadIDs = append(squadIDs, squadID)
		}
	}

	return squadIDs
}

func isMembershipOf(events core.DomainEvents, squadID core.SquadIDString, accountIDs []core.AccountIDString) bool {
	for _, event := range events {
		switch e := event.(type) {
		case core.SquadCreated:
			if e.SquadID == squadID && slices.Contains(accountIDs, e.HostID) {
				return true
			}
		case core.SquadMemberInvited:
			if e.SquadID == squadID && slices.Contains(accountIDs, e.AccountID) {
				return true
			}
		}
	}

	return false
}
