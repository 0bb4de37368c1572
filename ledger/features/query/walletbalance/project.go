package walletbalance

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to determine the wallet of an account.
//
// Query Logic:
//
//	GIVEN: All wallet events of the account
//	WHEN: WalletBalance query is executed
//	THEN: Wallet is returned with the balance, the tier by lifetime steps and the redemptions of the day of At
//	NOT FOUND: ErrAccountNotFound if the account was never opened
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) (Wallet, error) {
	account := core.ProjectAccount(query.AccountID, history)
	if !account.Exists {
		return Wallet{}, core.ErrAccountNotFound
	}

	today := account.RedemptionsOn(core.ToDateKey(query.At))

	return Wallet{
		AccountID:            account.ID,
		DisplayName:          account.DisplayName,
		Avatar:               account.Avatar,
		Balance:              account.Balance(),
		Tier:                 core.ClassifyTier(account.LifetimeSteps),
		RedemptionsToday:     today,
		RemainingRedemptions: max(0, core.DailyRedemptionLimit-today),
		StepHistory:          account.StepHistory,
		SequenceNumber:       maxSequenceNumber,
	}, nil
}

// BuildEventFilter creates the filter for the wallet events of the account.
func BuildEventFilter(accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Accounts(accountID).Finalize()
}
