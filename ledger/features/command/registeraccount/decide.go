package registeraccount

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Decide implements the business logic to determine whether an account should be opened.
//
// Business Rules:
//
//	GIVEN: An account id
//	WHEN: RegisterAccount command is received
//	THEN: AccountOpened event is generated
//	IDEMPOTENCY: If the account is already open, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if core.ProjectAccount(command.AccountID, history).Exists {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildAccountOpened(command.AccountID, command.DisplayName, command.Avatar, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for the wallet events of the account.
func BuildEventFilter(accountID core.AccountIDString) eventstore.Filter {
	return boundaries.New().Accounts(accountID).Finalize()
}
