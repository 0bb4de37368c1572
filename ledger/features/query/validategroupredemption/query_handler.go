package validategroupredemption

import (
	"context"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
// The members are found by a first query of the squad.
type QueryHandler struct {
	eventStore boundaries.EventQuerier
}

func NewQueryHandler(eventStore boundaries.EventQuerier) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (Validation, error) {
	if query.SquadID == "" || query.AccountID == "" {
		return Validation{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	membership, err := boundaries.Load(ctx, h.eventStore, boundaries.New().Squads(query.SquadID).Finalize())
	if err != nil {
		return Validation{}, err
	}

	squad, found := core.FindSquad(core.ProjectSquads(membership.Events, query.At), query.SquadID)
	if !found {
		return Validation{}, core.ErrSquadNotFound
	}

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.SquadID, squad.MemberIDs()))
	if err != nil {
		return Validation{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber)
}
