package core

import (
	"time"
)

// Friend is one side of a friendship as seen from the other account.
type Friend struct {
	AccountID AccountIDString
	Since     time.Time
}

// ProjectFriends folds the friendship events into the current friends of the account, in the order they were added.
func ProjectFriends(accountID AccountIDString, events DomainEvents) []Friend {
	var friends []Friend

	otherSide := func(first AccountIDString, second AccountIDString) (AccountIDString, bool) {
		switch accountID {
		case first:
			return second, true
		case second:
			return first, true
		default:
			return "", false
		}
	}

	for _, event := range events {
		switch e := event.(type) {
		case FriendshipStarted:
			friendID, involved := otherSide(e.AccountID1, e.AccountID2)
			if !involved || IsFriend(friends, friendID) {
				continue
			}
			friends = append(friends, Friend{AccountID: friendID, Since: e.OccurredAt})

		case FriendshipEnded:
			friendID, involved := otherSide(e.AccountID1, e.AccountID2)
			if !involved {
				continue
			}
			for i := range friends {
				if friends[i].AccountID == friendID {
					friends = append(friends[:i], friends[i+1:]...)
					break
				}
			}
		}
	}

	return friends
}

func IsFriend(friends []Friend, accountID AccountIDString) bool {
	for _, f := range friends {
		if f.AccountID == accountID {
			return true
		}
	}

	return false
}

// AreFriends returns true if the two accounts are friends after the events.
func AreFriends(a AccountIDString, b AccountIDString, events DomainEvents) bool {
	return IsFriend(ProjectFriends(a, events), b)
}
