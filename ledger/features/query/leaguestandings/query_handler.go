package leaguestandings

import (
	"context"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// QueryHandler orchestrates the query processing workflow: Query -> Unmarshal -> Project.
type QueryHandler struct {
	eventStore boundaries.EventQuerier
}

func NewQueryHandler(eventStore boundaries.EventQuerier) QueryHandler {
	return QueryHandler{
		eventStore: eventStore,
	}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) (LeagueStandings, error) {
	if !core.IsValidLeaguePeriod(query.Period) {
		return LeagueStandings{}, core.ErrInvalidLeaguePeriod
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter())
	if err != nil {
		return LeagueStandings{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber), nil
}
