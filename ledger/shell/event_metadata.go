package shell

import (
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

var ErrMappingToEventMetadataFailed = errors.New("mapping to event metadata failed")

type (
	MessageID = string

	// CausationID is the message id of the previous event of the same decision,
	// the first event of a decision is caused by the correlation id.
	CausationID = string

	// CorrelationID is shared by all events appended by one command handler call.
	CorrelationID = string
)

// EventMetadata travels next to the payload, Rejected marks the audit events of rejected commands.
type EventMetadata struct {
	MessageID     MessageID
	CausationID   CausationID
	CorrelationID CorrelationID
	Rejected      bool `json:",omitempty"`
}

func BuildEventMetadata(messageID uuid.UUID, causationID uuid.UUID, correlationID uuid.UUID) EventMetadata {
	return EventMetadata{
		MessageID:     messageID.String(),
		CausationID:   causationID.String(),
		CorrelationID: correlationID.String(),
	}
}

// EventMetadataFrom decodes the metadata of a stored event.
func EventMetadataFrom(storableEvent eventstore.StorableEvent) (EventMetadata, error) {
	var metadata EventMetadata
	if err := payloadJSON.Unmarshal(storableEvent.MetadataJSON, &metadata); err != nil {
		return EventMetadata{}, errors.Join(ErrMappingToEventMetadataFailed, err)
	}

	return metadata, nil
}
