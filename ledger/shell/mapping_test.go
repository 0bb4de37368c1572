package shell

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func givenAllDomainEvents(at time.Time) core.DomainEvents {
	offer := core.Offer{OfferID: "offer-1", PartnerID: "partner-1", Title: "Free Coffee", StepsRequired: 5000}
	squadOffer := core.SquadOffer{OfferID: "offer-2", OfferTitle: "Team Lunch", OfferPartner: "Bistro", PartnerID: "partner-2", TargetSteps: 20000}
	host := core.SquadMemberProfile{AccountID: "anna", DisplayName: "Anna", Avatar: "a.png", WalletBalance: 12000}
	friend := core.SquadMemberProfile{AccountID: "ben", DisplayName: "Ben", Avatar: "b.png", WalletBalance: 9000}
	failure := core.BuildFailure(core.FailureInsufficientBalance, core.InsufficientBalanceReason(5000, 1200))

	created := core.BuildSquadCreated("squad-1", host, squadOffer, at)
	squad := core.ProjectSquads(core.DomainEvents{created}, at)[0]

	challenge := core.Challenge{ChallengeID: "walk-10k", Title: "10k a day", Goal: 10000, GoalUnit: "steps", RewardPoints: 50, EndsAt: at.Add(7 * 24 * time.Hour)}
	participant := core.ProjectChallengeParticipants("walk-10k", core.DomainEvents{core.BuildChallengeJoined("anna", challenge, at)}, at)[0]

	return core.DomainEvents{
		core.BuildAccountOpened("anna", "Anna", "a.png", at),
		core.BuildDailyStepsRecorded("anna", core.StepEntry{Date: "2026-10-14", Steps: 8000}, 20000, at),
		core.BuildOfferRedeemed("anna", "redemption-1", "operation-1", offer, "KX-ABCDE", at.Add(24*time.Hour), at),
		core.BuildRedemptionCodeUsed("anna", "redemption-1", "KX-ABCDE", at),
		created,
		core.BuildSquadMemberInvited("squad-1", friend, at),
		core.BuildSquadInvitationAccepted("squad-1", "ben", 9000, at),
		core.BuildSquadInvitationDeclined("squad-1", "ben", at),
		core.BuildSquadCancelled("squad-1", "anna", at),
		core.BuildSquadStepsContributed("squad-1", "ben", 4000, at),
		core.BuildSquadRewardRedeemed(squad, "redemption-2", "KX-FGHJK", at),
		core.BuildSquadRewardDebited("squad-1", "anna", "redemption-2", 11000, at),
		core.BuildRedeemingOfferFailed("anna", "operation-2", offer, failure, at),
		core.BuildMarkingRedemptionUsedFailed("anna", "redemption-1", failure, at),
		core.BuildSquadOperationFailed(core.CreatingSquadFailedEventType, "squad-1", "anna", failure, at),
		core.BuildSquadOperationFailed(core.AcceptingSquadInvitationFailedEventType, "squad-1", "ben", failure, at),
		core.BuildSquadOperationFailed(core.DecliningSquadInvitationFailedEventType, "squad-1", "ben", failure, at),
		core.BuildSquadOperationFailed(core.CancelingSquadFailedEventType, "squad-1", "ben", failure, at),
		core.BuildSquadOperationFailed(core.ContributingSquadStepsFailedEventType, "squad-1", "ben", failure, at),
		core.BuildSquadOperationFailed(core.RedeemingSquadRewardFailedEventType, "squad-1", "ben", failure, at),
		core.BuildFriendshipStarted("ben", "anna", at),
		core.BuildFriendshipEnded("anna", "ben", at),
		core.BuildAddingFriendFailed("anna", "anna", failure, at),
		core.BuildChallengeJoined("anna", challenge, at),
		core.BuildChallengeProgressRecorded(participant, 6000, at),
		core.BuildChallengeOperationFailed(core.JoiningChallengeFailedEventType, "walk-10k", "ben", failure, at),
		core.BuildChallengeOperationFailed(core.RecordingChallengeProgressFailedEventType, "walk-10k", "ben", failure, at),
	}
}

func Test_DomainEventsFrom_RestoresEveryEventType(t *testing.T) {
	// arrange
	events := givenAllDomainEvents(time.Date(2026, 10, 14, 9, 30, 0, 123456789, time.UTC))

	storableEvents, err := StorableEventsFrom(events, uuid.New())
	require.NoError(t, err)

	// act
	restored, err := DomainEventsFrom(storableEvents)

	// assert
	require.NoError(t, err)
	assert.Equal(t, events, restored)

	for i, storableEvent := range storableEvents {
		assert.Equal(t, events[i].EventType(), storableEvent.EventType)
	}
}

func Test_StorableEventsFrom_ChainsCausation(t *testing.T) {
	// arrange
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	correlationID := uuid.New()
	events := core.DomainEvents{
		core.BuildAccountOpened("anna", "Anna", "", at),
		core.BuildDailyStepsRecorded("anna", core.StepEntry{Date: "2026-10-14", Steps: 100}, 100, at),
	}

	// act
	storableEvents, err := StorableEventsFrom(events, correlationID)

	// assert
	require.NoError(t, err)
	require.Len(t, storableEvents, 2)

	first, err := EventMetadataFrom(storableEvents[0])
	require.NoError(t, err)
	second, err := EventMetadataFrom(storableEvents[1])
	require.NoError(t, err)

	assert.Equal(t, correlationID.String(), first.CorrelationID)
	assert.Equal(t, correlationID.String(), first.CausationID)
	assert.Equal(t, correlationID.String(), second.CorrelationID)
	assert.Equal(t, first.MessageID, second.CausationID)
	assert.NotEqual(t, first.MessageID, second.MessageID)
}

func Test_StorableEventFrom_UsesFieldNamesAsPayloadKeys(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	storableEvent, err := StorableEventFrom(
		core.BuildAccountOpened("anna", "Anna", "a.png", at),
		BuildEventMetadata(uuid.New(), uuid.New(), uuid.New()),
	)

	require.NoError(t, err)
	assert.Contains(t, string(storableEvent.PayloadJSON), `"AccountID":"anna"`)
}

func Test_StorableEventFrom_MarksRejections(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	failure := core.BuildFailure(core.FailureInsufficientBalance, "Insufficient balance")

	rejected, err := StorableEventFrom(
		core.BuildMarkingRedemptionUsedFailed("anna", "r-1", failure, at),
		BuildEventMetadata(uuid.New(), uuid.New(), uuid.New()),
	)
	require.NoError(t, err)
	accepted, err := StorableEventFrom(
		core.BuildAccountOpened("anna", "Anna", "", at),
		BuildEventMetadata(uuid.New(), uuid.New(), uuid.New()),
	)
	require.NoError(t, err)

	rejectedMetadata, err := EventMetadataFrom(rejected)
	require.NoError(t, err)
	acceptedMetadata, err := EventMetadataFrom(accepted)
	require.NoError(t, err)

	assert.True(t, rejectedMetadata.Rejected)
	assert.False(t, acceptedMetadata.Rejected)
}

func Test_DomainEventFrom_UnknownEventType(t *testing.T) {
	storableEvent := eventstore.StorableEvent{EventType: "SomethingHappened", PayloadJSON: []byte(`{}`)}

	_, err := DomainEventFrom(storableEvent)

	assert.ErrorIs(t, err, ErrMappingToDomainEventFailed)
	assert.ErrorIs(t, err, ErrMappingToDomainEventUnknownEventType)
}

func Test_DomainEventFrom_BrokenPayload(t *testing.T) {
	storableEvent := eventstore.StorableEvent{EventType: core.AccountOpenedEventType, PayloadJSON: []byte(`{"AccountID":`)}

	_, err := DomainEventFrom(storableEvent)

	assert.ErrorIs(t, err, ErrMappingToDomainEventFailed)
}
