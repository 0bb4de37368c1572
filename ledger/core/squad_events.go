package core

import (
	"time"
)

const (
	SquadCreatedEventType            = "SquadCreated"
	SquadMemberInvitedEventType      = "SquadMemberInvited"
	SquadInvitationAcceptedEventType = "SquadInvitationAccepted"
	SquadInvitationDeclinedEventType = "SquadInvitationDeclined"
	SquadCancelledEventType          = "SquadCancelled"
	SquadStepsContributedEventType   = "SquadStepsContributed"
	SquadRewardRedeemedEventType     = "SquadRewardRedeemed"
	SquadRewardDebitedEventType      = "SquadRewardDebited"

	// SquadLifetime is the time between creation and expiry of a squad.
	SquadLifetime = 30 * 24 * time.Hour
)

// SquadOffer is the partner offer a squad pools steps for.
type SquadOffer struct {
	OfferID      string
	OfferTitle   string
	OfferPartner string
	PartnerID    string
	TargetSteps  int
}

// SquadCreated represents a host opening a squad, the host joins as active member.
// HostWalletBalance is the host's available balance at creation.
type SquadCreated struct {
	SquadID           SquadIDString
	HostID            AccountIDString
	HostDisplayName   string
	HostAvatar        string
	HostWalletBalance int
	OfferID           string
	OfferTitle        string
	OfferPartner      string
	PartnerID         string
	TargetSteps       int
	ExpiresAt         time.Time
	OccurredAt        OccurredAt
}

func BuildSquadCreated(
	squadID SquadIDString,
	host SquadMemberProfile,
	offer SquadOffer,
	occurredAt time.Time,
) SquadCreated {

	return SquadCreated{
		SquadID:           squadID,
		HostID:            host.AccountID,
		HostDisplayName:   host.DisplayName,
		HostAvatar:        host.Avatar,
		HostWalletBalance: host.WalletBalance,
		OfferID:           offer.OfferID,
		OfferTitle:        offer.OfferTitle,
		OfferPartner:      offer.OfferPartner,
		PartnerID:         offer.PartnerID,
		TargetSteps:       offer.TargetSteps,
		ExpiresAt:         ToOccurredAt(occurredAt.Add(SquadLifetime)),
		OccurredAt:        ToOccurredAt(occurredAt),
	}
}

func (e SquadCreated) EventType() string        { return SquadCreatedEventType }
func (e SquadCreated) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadCreated) IsErrorEvent() bool       { return false }

// SquadMemberProfile is the cached display data and balance snapshot of a member.
type SquadMemberProfile struct {
	AccountID     AccountIDString
	DisplayName   string
	Avatar        string
	WalletBalance int
}

// SquadMemberInvited represents a pending invitation, created together with the squad.
type SquadMemberInvited struct {
	SquadID       SquadIDString
	AccountID     AccountIDString
	DisplayName   string
	Avatar        string
	WalletBalance int
	OccurredAt    OccurredAt
}

func BuildSquadMemberInvited(squadID SquadIDString, invitee SquadMemberProfile, occurredAt time.Time) SquadMemberInvited {
	return SquadMemberInvited{
		SquadID:       squadID,
		AccountID:     invitee.AccountID,
		DisplayName:   invitee.DisplayName,
		Avatar:        invitee.Avatar,
		WalletBalance: invitee.WalletBalance,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e SquadMemberInvited) EventType() string        { return SquadMemberInvitedEventType }
func (e SquadMemberInvited) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadMemberInvited) IsErrorEvent() bool       { return false }

// SquadInvitationAccepted carries the member's refreshed balance snapshot.
type SquadInvitationAccepted struct {
	SquadID       SquadIDString
	AccountID     AccountIDString
	WalletBalance int
	OccurredAt    OccurredAt
}

func BuildSquadInvitationAccepted(
	squadID SquadIDString,
	accountID AccountIDString,
	walletBalance int,
	occurredAt time.Time,
) SquadInvitationAccepted {

	return SquadInvitationAccepted{
		SquadID:       squadID,
		AccountID:     accountID,
		WalletBalance: walletBalance,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

func (e SquadInvitationAccepted) EventType() string        { return SquadInvitationAcceptedEventType }
func (e SquadInvitationAccepted) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadInvitationAccepted) IsErrorEvent() bool       { return false }

// SquadInvitationDeclined cancels the whole squad.
type SquadInvitationDeclined struct {
	SquadID    SquadIDString
	AccountID  AccountIDString
	OccurredAt OccurredAt
}

func BuildSquadInvitationDeclined(squadID SquadIDString, accountID AccountIDString, occurredAt time.Time) SquadInvitationDeclined {
	return SquadInvitationDeclined{
		SquadID:    squadID,
		AccountID:  accountID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e SquadInvitationDeclined) EventType() string        { return SquadInvitationDeclinedEventType }
func (e SquadInvitationDeclined) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadInvitationDeclined) IsErrorEvent() bool       { return false }

// SquadCancelled represents the host cancelling a squad, AccountID is the host.
type SquadCancelled struct {
	SquadID    SquadIDString
	AccountID  AccountIDString
	OccurredAt OccurredAt
}

func BuildSquadCancelled(squadID SquadIDString, accountID AccountIDString, occurredAt time.Time) SquadCancelled {
	return SquadCancelled{
		SquadID:    squadID,
		AccountID:  accountID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e SquadCancelled) EventType() string        { return SquadCancelledEventType }
func (e SquadCancelled) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadCancelled) IsErrorEvent() bool       { return false }

// SquadStepsContributed represents a member pledging steps towards the squad target.
// Pledged steps stay in the member's wallet until the squad reward is redeemed.
type SquadStepsContributed struct {
	SquadID    SquadIDString
	AccountID  AccountIDString
	Steps      int
	OccurredAt OccurredAt
}

func BuildSquadStepsContributed(squadID SquadIDString, accountID AccountIDString, steps int, occurredAt time.Time) SquadStepsContributed {
	return SquadStepsContributed{
		SquadID:    squadID,
		AccountID:  accountID,
		Steps:      steps,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e SquadStepsContributed) EventType() string        { return SquadStepsContributedEventType }
func (e SquadStepsContributed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadStepsContributed) IsErrorEvent() bool       { return false }

// SquadRewardRedeemed is the squad redemption record, owned by the host and referencing all members.
// It is always appended together with the SquadRewardDebited events of the members.
type SquadRewardRedeemed struct {
	SquadID        SquadIDString
	HostID         AccountIDString
	RedemptionID   RedemptionIDString
	RedemptionCode string
	OfferID        string
	PartnerID      string
	OfferTitle     string
	StepsSpent     int
	StepsCollected int
	MemberIDs      []AccountIDString
	OccurredAt     OccurredAt
}

func BuildSquadRewardRedeemed(
	squad SquadState,
	redemptionID RedemptionIDString,
	redemptionCode string,
	occurredAt time.Time,
) SquadRewardRedeemed {

	return SquadRewardRedeemed{
		SquadID:        squad.ID,
		HostID:         squad.HostID,
		RedemptionID:   redemptionID,
		RedemptionCode: redemptionCode,
		OfferID:        squad.OfferID,
		PartnerID:      squad.PartnerID,
		OfferTitle:     squad.OfferTitle,
		StepsSpent:     squad.TargetSteps,
		StepsCollected: squad.CurrentSteps,
		MemberIDs:      squad.MemberIDs(),
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

func (e SquadRewardRedeemed) EventType() string        { return SquadRewardRedeemedEventType }
func (e SquadRewardRedeemed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadRewardRedeemed) IsErrorEvent() bool       { return false }

// SquadRewardDebited is the share of a squad redemption debited from one member's wallet.
type SquadRewardDebited struct {
	SquadID      SquadIDString
	AccountID    AccountIDString
	RedemptionID RedemptionIDString
	Steps        int
	OccurredAt   OccurredAt
}

func BuildSquadRewardDebited(
	squadID SquadIDString,
	accountID AccountIDString,
	redemptionID RedemptionIDString,
	steps int,
	occurredAt time.Time,
) SquadRewardDebited {

	return SquadRewardDebited{
		SquadID:      squadID,
		AccountID:    accountID,
		RedemptionID: redemptionID,
		Steps:        steps,
		OccurredAt:   ToOccurredAt(occurredAt),
	}
}

func (e SquadRewardDebited) EventType() string        { return SquadRewardDebitedEventType }
func (e SquadRewardDebited) HasOccurredAt() time.Time { return e.OccurredAt }
func (e SquadRewardDebited) IsErrorEvent() bool       { return false }
