package core

import (
	"time"
)

const (
	FriendshipStartedEventType  = "FriendshipStarted"
	FriendshipEndedEventType    = "FriendshipEnded"
	AddingFriendFailedEventType = "AddingFriendFailed"
)

// FriendPair orders two account ids, a friendship is stored once with AccountID1 < AccountID2.
func FriendPair(a AccountIDString, b AccountIDString) (AccountIDString, AccountIDString) {
	if b < a {
		return b, a
	}

	return a, b
}

// FriendshipStarted represents two accounts becoming friends.
type FriendshipStarted struct {
	AccountID1 AccountIDString
	AccountID2 AccountIDString
	AddedBy    AccountIDString
	OccurredAt OccurredAt
}

func BuildFriendshipStarted(accountID AccountIDString, friendID AccountIDString, occurredAt time.Time) FriendshipStarted {
	first, second := FriendPair(accountID, friendID)

	return FriendshipStarted{
		AccountID1: first,
		AccountID2: second,
		AddedBy:    accountID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e FriendshipStarted) EventType() string        { return FriendshipStartedEventType }
func (e FriendshipStarted) HasOccurredAt() time.Time { return e.OccurredAt }
func (e FriendshipStarted) IsErrorEvent() bool       { return false }

// FriendshipEnded represents either side removing the friendship.
type FriendshipEnded struct {
	AccountID1 AccountIDString
	AccountID2 AccountIDString
	RemovedBy  AccountIDString
	OccurredAt OccurredAt
}

func BuildFriendshipEnded(accountID AccountIDString, friendID AccountIDString, occurredAt time.Time) FriendshipEnded {
	first, second := FriendPair(accountID, friendID)

	return FriendshipEnded{
		AccountID1: first,
		AccountID2: second,
		RemovedBy:  accountID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

func (e FriendshipEnded) EventType() string        { return FriendshipEndedEventType }
func (e FriendshipEnded) HasOccurredAt() time.Time { return e.OccurredAt }
func (e FriendshipEnded) IsErrorEvent() bool       { return false }

// AddingFriendFailed records a rejected friend request.
type AddingFriendFailed struct {
	AccountID   AccountIDString
	FriendID    AccountIDString
	FailureCode FailureCode
	FailureInfo string
	OccurredAt  OccurredAt
}

func BuildAddingFriendFailed(
	accountID AccountIDString,
	friendID AccountIDString,
	failure Failure,
	occurredAt time.Time,
) AddingFriendFailed {

	return AddingFriendFailed{
		AccountID:   accountID,
		FriendID:    friendID,
		FailureCode: failure.Code,
		FailureInfo: failure.Message,
		OccurredAt:  ToOccurredAt(occurredAt),
	}
}

func (e AddingFriendFailed) EventType() string        { return AddingFriendFailedEventType }
func (e AddingFriendFailed) HasOccurredAt() time.Time { return e.OccurredAt }
func (e AddingFriendFailed) IsErrorEvent() bool       { return true }
