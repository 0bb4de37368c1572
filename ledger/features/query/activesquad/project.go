package activesquad

import (
	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/internal/boundaries"
)

// Project implements the query logic to find the squad of an account.
//
// Query Logic:
//
//	GIVEN: All events of the squads the account hosts or was invited to
//	WHEN: ActiveSquad query is executed
//	THEN: ActiveSquad is returned with the joined squad, or else with the oldest open invitation
//	EXCLUDES: Completed, cancelled and expired squads, declined invitations
func Project(history core.DomainEvents, query Query, maxSequenceNumber uint) ActiveSquad {
	squads := core.ProjectSquads(history, query.At)
	result := ActiveSquad{SequenceNumber: maxSequenceNumber}

	if squad, found := core.JoinedSquadOf(query.AccountID, squads); found {
		result.Found, result.Joined, result.Squad = true, true, squad

		return result
	}

	if squad, found := core.NonTerminalSquadOf(query.AccountID, squads); found {
		result.Found, result.Squad = true, squad
	}

	return result
}

// BuildEventFilter creates the filter for all events of the squads.
func BuildEventFilter(squadIDs []core.SquadIDString) eventstore.Filter {
	return boundaries.New().Squads(squadIDs...).Finalize()
}
