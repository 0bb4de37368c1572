package shell

import (
	"errors"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

var (
	ErrMappingToDomainEventFailed           = errors.New("mapping to domain event failed")
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	payload := storableEvent.PayloadJSON

	switch storableEvent.EventType {
	case core.AccountOpenedEventType:
		return unmarshal[core.AccountOpened](payload)
	case core.DailyStepsRecordedEventType:
		return unmarshal[core.DailyStepsRecorded](payload)
	case core.OfferRedeemedEventType:
		return unmarshal[core.OfferRedeemed](payload)
	case core.RedemptionCodeUsedEventType:
		return unmarshal[core.RedemptionCodeUsed](payload)
	case core.SquadCreatedEventType:
		return unmarshal[core.SquadCreated](payload)
	case core.SquadMemberInvitedEventType:
		return unmarshal[core.SquadMemberInvited](payload)
	case core.SquadInvitationAcceptedEventType:
		return unmarshal[core.SquadInvitationAccepted](payload)
	case core.SquadInvitationDeclinedEventType:
		return unmarshal[core.SquadInvitationDeclined](payload)
	case core.SquadCancelledEventType:
		return unmarshal[core.SquadCancelled](payload)
	case core.SquadStepsContributedEventType:
		return unmarshal[core.SquadStepsContributed](payload)
	case core.SquadRewardRedeemedEventType:
		return unmarshal[core.SquadRewardRedeemed](payload)
	case core.SquadRewardDebitedEventType:
		return unmarshal[core.SquadRewardDebited](payload)
	case core.RedeemingOfferFailedEventType:
		return unmarshal[core.RedeemingOfferFailed](payload)
	case core.MarkingRedemptionUsedFailedEventType:
		return unmarshal[core.MarkingRedemptionUsedFailed](payload)
	case core.FriendshipStartedEventType:
		return unmarshal[core.FriendshipStarted](payload)
	case core.FriendshipEndedEventType:
		return unmarshal[core.FriendshipEnded](payload)
	case core.AddingFriendFailedEventType:
		return unmarshal[core.AddingFriendFailed](payload)
	case core.ChallengeJoinedEventType:
		return unmarshal[core.ChallengeJoined](payload)
	case core.ChallengeProgressRecordedEventType:
		return unmarshal[core.ChallengeProgressRecorded](payload)
	default:
		if core.IsSquadFailureEventType(storableEvent.EventType) {
			return unmarshal[core.SquadOperationFailed](payload)
		}
		if core.IsChallengeFailureEventType(storableEvent.EventType) {
			return unmarshal[core.ChallengeOperationFailed](payload)
		}
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

func unmarshal[E core.DomainEvent](payload []byte) (core.DomainEvent, error) {
	event := new(E)
	if err := payloadJSON.Unmarshal(payload, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}
