// Package core contains the domain events and the pure business rules of the step rewards ledger:
// wallet balances, league tiers, redemption codes, the step history window, the squad state machine,
// friendships and challenge participation.
//
// Nothing in here does I/O. State is always projected from a history of DomainEvents,
// which the feature slices query from the event store.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
