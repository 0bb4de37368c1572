package core

import (
	"time"
)

type SquadStatus = string

const (
	SquadStatusPending   SquadStatus = "pending"
	SquadStatusActive    SquadStatus = "active"
	SquadStatusCompleted SquadStatus = "completed"
	SquadStatusCancelled SquadStatus = "cancelled"
	SquadStatusExpired   SquadStatus = "expired"
)

type MemberStatus = string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusActive   MemberStatus = "active"
	MemberStatusDeclined MemberStatus = "declined"
)

// SquadMember holds cached display fields and the wallet balance snapshot of its last update.
type SquadMember struct {
	AccountID        AccountIDString
	DisplayName      string
	Avatar           string
	StepsContributed int
	WalletBalance    int
	InvitedAt        time.Time
	JoinedAt         time.Time
	Status           MemberStatus
}

// SquadState is one squad projected at an instant, expiry is applied passively by the projection.
type SquadState struct {
	ID             SquadIDString
	OfferID        string
	OfferTitle     string
	OfferPartner   string
	PartnerID      string
	TargetSteps    int
	CurrentSteps   int
	Status         SquadStatus
	HostID         AccountIDString
	Members        []SquadMember
	CreatedAt      time.Time
	ExpiresAt      time.Time
	RedemptionID   RedemptionIDString
	RedemptionCode string
	RedeemedBy     AccountIDString
	RedeemedAt     time.Time
	CancelledBy    AccountIDString
}

// IsTerminal returns true for completed, cancelled and expired squads.
func (s SquadState) IsTerminal() bool {
	switch s.Status {
	case SquadStatusCompleted, SquadStatusCancelled, SquadStatusExpired:
		return true
	default:
		return false
	}
}

func (s SquadState) Member(accountID AccountIDString) (SquadMember, bool) {
	for _, m := range s.Members {
		if m.AccountID == accountID {
			return m, true
		}
	}

	return SquadMember{}, false
}

// HasMember returns true if the account was invited to or created the squad and did not decline.
func (s SquadState) HasMember(accountID AccountIDString) bool {
	m, found := s.Member(accountID)

	return found && m.Status != MemberStatusDeclined
}

func (s SquadState) MemberIDs() []AccountIDString {
	ids := make([]AccountIDString, 0, len(s.Members))
	for _, m := range s.Members {
		ids = append(ids, m.AccountID)
	}

	return ids
}

func (s SquadState) PendingCount() int {
	count := 0
	for _, m := range s.Members {
		if m.Status != MemberStatusActive {
			count++
		}
	}

	return count
}

func (s SquadState) TotalWalletBalance() int {
	total := 0
	for _, m := range s.Members {
		total += m.WalletBalance
	}

	return total
}

// WithWalletBalances returns a copy with the snapshots of the given members replaced by live balances.
func (s SquadState) WithWalletBalances(balances map[AccountIDString]int) SquadState {
	members := make([]SquadMember, len(s.Members))
	copy(members, s.Members)

	for i := range members {
		if balance, found := balances[members[i].AccountID]; found {
			members[i].WalletBalance = balance
		}
	}

	s.Members = members

	return s
}

// LiveWalletBalances projects the available steps of every member from the wallet events in history.
func LiveWalletBalances(history DomainEvents, squad SquadState) map[AccountIDString]int {
	balances := make(map[AccountIDString]int, len(squad.Members))
	for _, accountID := range squad.MemberIDs() {
		balances[accountID] = ProjectAccount(accountID, history).Balance().Available
	}

	return balances
}

func (s *SquadState) member(accountID AccountIDString) *SquadMember {
	for i := range s.Members {
		if s.Members[i].AccountID == accountID {
			return &s.Members[i]
		}
	}

	return nil
}

func (s *SquadState) refreshStatus() {
	if s.Status == SquadStatusCompleted || s.Status == SquadStatusCancelled {
		return
	}

	s.Status = SquadStatusActive
	if s.PendingCount() > 0 {
		s.Status = SquadStatusPending
	}
}

// ProjectSquads folds the squad events into squads in creation order.
// Squads whose ExpiresAt is not after now and which are not terminal project as expired.
func ProjectSquads(events DomainEvents, now time.Time) []SquadState {
	var squads []SquadState
	index := make(map[SquadIDString]int)

	squadOf := func(squadID SquadIDString) *SquadState {
		if i, found := index[squadID]; found {
			return &squads[i]
		}

		return nil
	}

	for _, event := range events {
		switch e := event.(type) {
		case SquadCreated:
			if _, found := index[e.SquadID]; found {
				continue
			}
			index[e.SquadID] = len(squads)
			squads = append(squads, SquadState{
				ID:           e.SquadID,
				OfferID:      e.OfferID,
				OfferTitle:   e.OfferTitle,
				OfferPartner: e.OfferPartner,
				PartnerID:    e.PartnerID,
				TargetSteps:  e.TargetSteps,
				Status:       SquadStatusActive,
				HostID:       e.HostID,
				CreatedAt:    e.OccurredAt,
				ExpiresAt:    e.ExpiresAt,
				Members: []SquadMember{{
					AccountID:     e.HostID,
					DisplayName:   e.HostDisplayName,
					Avatar:        e.HostAvatar,
					WalletBalance: e.HostWalletBalance,
					InvitedAt:     e.OccurredAt,
					JoinedAt:      e.OccurredAt,
					Status:        MemberStatusActive,
				}},
			})

		case SquadMemberInvited:
			squad := squadOf(e.SquadID)
			if squad == nil || squad.member(e.AccountID) != nil {
				continue
			}
			squad.Members = append(squad.Members, SquadMember{
				AccountID:     e.AccountID,
				DisplayName:   e.DisplayName,
				Avatar:        e.Avatar,
				WalletBalance: e.WalletBalance,
				InvitedAt:     e.OccurredAt,
				Status:        MemberStatusPending,
			})
			squad.refreshStatus()

		case SquadInvitationAccepted:
			squad := squadOf(e.SquadID)
			if squad == nil {
				continue
			}
			if m := squad.member(e.AccountID); m != nil {
				m.Status = MemberStatusActive
				m.JoinedAt = e.OccurredAt
				m.WalletBalance = e.WalletBalance
			}
			squad.refreshStatus()

		case SquadInvitationDeclined:
			squad := squadOf(e.SquadID)
			if squad == nil {
				continue
			}
			if m := squad.member(e.AccountID); m != nil {
				m.Status = MemberStatusDeclined
			}
			squad.Status = SquadStatusCancelled
			squad.CancelledBy = e.AccountID

		case SquadCancelled:
			squad := squadOf(e.SquadID)
			if squad == nil {
				continue
			}
			squad.Status = SquadStatusCancelled
			squad.CancelledBy = e.AccountID

		case SquadStepsContributed:
			squad := squadOf(e.SquadID)
			if squad == nil {
				continue
			}
			if m := squad.member(e.AccountID); m != nil {
				m.StepsContributed += e.Steps
			}
			squad.CurrentSteps += e.Steps

		case SquadRewardRedeemed:
			squad := squadOf(e.SquadID)
			if squad == nil {
				continue
			}
			squad.Status = SquadStatusCompleted
			squad.RedemptionID = e.RedemptionID
			squad.RedemptionCode = e.RedemptionCode
			squad.RedeemedBy = e.HostID
			squad.RedeemedAt = e.OccurredAt
		}
	}

	for i := range squads {
		if !squads[i].IsTerminal() && !now.Before(squads[i].ExpiresAt) {
			squads[i].Status = SquadStatusExpired
		}
	}

	return squads
}

// FindSquad returns the squad with the given id.
func FindSquad(squads []SquadState, squadID SquadIDString) (SquadState, bool) {
	for _, s := range squads {
		if s.ID == squadID {
			return s, true
		}
	}

	return SquadState{}, false
}

// NonTerminalSquadOf returns the pending or active squad the account belongs to, if any.
func NonTerminalSquadOf(accountID AccountIDString, squads []SquadState) (SquadState, bool) {
	for _, s := range squads {
		if !s.IsTerminal() && s.HasMember(accountID) {
			return s, true
		}
	}

	return SquadState{}, false
}

// OtherNonTerminalSquadOf returns a pending or active squad other than squadID the account belongs to, if any.
func OtherNonTerminalSquadOf(accountID AccountIDString, squadID SquadIDString, squads []SquadState) (SquadState, bool) {
	for _, s := range squads {
		if s.ID != squadID && !s.IsTerminal() && s.HasMember(accountID) {
			return s, true
		}
	}

	return SquadState{}, false
}

// JoinedSquadOf returns the pending or active squad the account hosts or accepted an invitation to, if any.
// Open invitations do not count.
func JoinedSquadOf(accountID AccountIDString, squads []SquadState) (SquadState, bool) {
	for _, s := range squads {
		if s.IsTerminal() {
			continue
		}

		if m, found := s.Member(accountID); found && m.Status == MemberStatusActive {
			return s, true
		}
	}

	return SquadState{}, false
}

// GroupRedemptionValidation is the answer to "may this account redeem the squad reward now".
type GroupRedemptionValidation struct {
	CanRedeem          bool
	Failure            *Failure
	TotalWalletBalance int
	RequiredBalance    int
}

// ValidateGroupRedemption runs the group checks in a fixed order and stops at the first failure:
// host only, squad active, no pending members, wallet balances cover the target,
// collected steps reach the target, no redemption code yet.
func ValidateGroupRedemption(squad SquadState, accountID AccountIDString) GroupRedemptionValidation {
	result := GroupRedemptionValidation{
		TotalWalletBalance: squad.TotalWalletBalance(),
		RequiredBalance:    squad.TargetSteps,
	}

	reject := func(failure Failure) GroupRedemptionValidation {
		result.Failure = &failure

		return result
	}

	if accountID != squad.HostID {
		return reject(BuildFailure(FailureNotSquadHost, ReasonOnlyHostCanRedeem))
	}

	if squad.Status != SquadStatusActive {
		return reject(BuildFailure(FailureSquadNotActive, SquadNotActiveReason(squad.Status)))
	}

	if pending := squad.PendingCount(); pending > 0 {
		return reject(BuildFailure(FailureMembersPending, MembersPendingReason(pending)))
	}

	if result.TotalWalletBalance < squad.TargetSteps {
		return reject(BuildFailure(
			FailureInsufficientSquadBalance,
			InsufficientSquadBalanceReason(squad.TargetSteps, result.TotalWalletBalance),
		))
	}

	if squad.CurrentSteps < squad.TargetSteps {
		return reject(BuildFailure(
			FailureSquadStepsIncomplete,
			SquadStepsIncompleteReason(squad.TargetSteps-squad.CurrentSteps),
		))
	}

	if squad.RedemptionCode != "" {
		return reject(BuildFailure(FailureAlreadyRedeemed, ReasonSquadRewardRedeemed))
	}

	result.CanRedeem = true

	return result
}

// SquadNotActiveReason explains why a squad in status cannot be acted on.
func SquadNotActiveReason(status SquadStatus) string {
	switch status {
	case SquadStatusPending:
		return ReasonSquadPending
	case SquadStatusCancelled:
		return ReasonSquadCancelled
	case SquadStatusExpired:
		return ReasonSquadExpired
	default:
		return ReasonSquadCompleted
	}
}

// MemberDebit is the share of a squad reward paid by one member.
type MemberDebit struct {
	AccountID AccountIDString
	Steps     int
}

// AllocateSquadDebits splits the target over the members. Pledged contributions are taken first,
// capped by the live balance and the remaining target, the rest is taken from the remaining
// balances in member order. Members paying nothing are omitted.
func AllocateSquadDebits(squad SquadState, liveBalances map[AccountIDString]int) []MemberDebit {
	remaining := squad.TargetSteps
	shares := make([]int, len(squad.Members))
	left := make([]int, len(squad.Members))

	for i, m := range squad.Members {
		left[i] = max(0, liveBalances[m.AccountID])
		share := min(m.StepsContributed, left[i], remaining)
		share = max(0, share)
		shares[i] = share
		left[i] -= share
		remaining -= share
	}

	for i := range squad.Members {
		if remaining == 0 {
			break
		}
		share := min(left[i], remaining)
		shares[i] += share
		remaining -= share
	}

	debits := make([]MemberDebit, 0, len(squad.Members))
	for i, m := range squad.Members {
		if shares[i] > 0 {
			debits = append(debits, MemberDebit{AccountID: m.AccountID, Steps: shares[i]})
		}
	}

	return debits
}
