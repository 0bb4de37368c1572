package activesquad

import (
	"context"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
// The squads are found by the memberships of the account first.
type QueryHandler struct {
	eventStore boundaries.EventQuerier
}

func NewQueryHandler(eventStore boundaries.EventQuerier) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveSquad, error) {
	if query.AccountID == "" {
		return ActiveSquad{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	memberships, err := boundaries.Load(ctx, h.eventStore, boundaries.New().Memberships(query.AccountID).Finalize())
	if err != nil {
		return ActiveSquad{}, err
	}

	squadIDs := boundaries.SquadIDsOf(memberships.Events)
	if len(squadIDs) == 0 {
		return ActiveSquad{SequenceNumber: memberships.MaxSequenceNumber}, nil
	}

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(squadIDs))
	if err != nil {
		return ActiveSquad{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber), nil
}
