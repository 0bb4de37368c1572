package validateredemption

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to validate a spend.
//
// Query Logic:
//
//	GIVEN: All wallet events of the account
//	WHEN: ValidateRedemption query is executed
//	THEN: Validation is returned, checks run in order: account exists, amount positive, balance, daily limit
//	INCLUDES: A missing account as UserNotFound failure, not as error
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) Validation {
	account := core.ProjectAccount(query.AccountID, history)
	today := core.ToDateKey(query.At)
	validation := core.ValidateRedemption(account, query.StepsRequired, today)

	return Validation{
		CanRedeem:        validation.CanRedeem,
		Failure:          validation.Failure,
		Balance:          validation.Balance,
		RedemptionsToday: account.RedemptionsOn(today),
		SequenceNumber:   maxSequenceNumber,
	}
}

// BuildEventFilter creates the filter for the wallet events of the account.
func BuildEventFilter(accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Accounts(accountID).Finalize()
}
