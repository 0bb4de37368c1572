package walletbalance

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

// Handle reads the wallet, a missing account is reported as core.ErrAccountNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Wallet, error) {
	if query.AccountID == "" {
		return Wallet{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.AccountID))
	if err != nil {
		return Wallet{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber)
}
