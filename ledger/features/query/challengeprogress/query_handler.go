package challengeprogress

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

// Handle reads the challenge, one nobody joined yields an empty leaderboard.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ChallengeProgress, error) {
	if query.ChallengeID == "" {
		return ChallengeProgress{}, core.ErrMissingIdentifier
	}

	ctx = eventstore.WithEventualConsistency(ctx)

	loaded, err := boundaries.Load(ctx, h.eventStore, BuildEventFilter(query.ChallengeID))
	if err != nil {
		return ChallengeProgress{}, err
	}

	return Project(loaded.Events, query, loaded.MaxSequenceNumber), nil
}
