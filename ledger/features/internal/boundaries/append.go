package boundaries

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/shell"
)

// EventAppender is the write side of the event store.
type EventAppender interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		storableEvents ...eventstore.StorableEvent,
	) error
}

// Append appends the events of one decision atomically, guarded by the boundary they were decided on.
func Append(ctx context.Context, store EventAppender, loaded Loaded, events core.DomainEvents) error {
	storableEvents, err := shell.StorableEventsFrom(events, uuid.New())
	if err != nil {
		return err
	}

	return shell.AppendError(store.Append(ctx, loaded.Filter, loaded.MaxSequenceNumber, storableEvents...))
}
