package listredemptions

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

func (h QueryHandler) Handle(ctx context.Context, query Query) (Redemptions, error) {
	if query.AccountID == "" {
		return Redemptions{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	memberships, err := boundaries.Load(ctx, h.eventStore, boundaries.New().Memberships(query.AccountID).Finalize())
	if err != nil {
		return Redemptions{}, err
	}

	squadIDs := boundaries.SquadIDsOf(memberships.Events)

	var squadRedemptionIDs []core.RedemptionIDString
	if len(squadIDs) > 0 {
		squads, err := boundaries.Load(ctx, h.eventStore, boundaries.New().Squads(squadIDs...).Finalize())
		if err != nil {
			return Redemptions{}, err
		}

		squadRedemptionIDs = SquadRedemptionIDs(squads.Events, query.AccountID)
	}

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.AccountID, squadIDs, squadRedemptionIDs))
	if err != nil {
		return Redemptions{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber), nil
}
