// Package redeemsquadreward implements the host redeeming the pooled squad reward.
//
// Every member's balance snapshot is refreshed from the live wallet before the group checks run.
// The squad redemption record and one debit per paying member are appended atomically over a
// boundary spanning the squad, all member wallets and the redemptions carrying the candidate code.
// A concurrent spend of any member makes the redemption retry against the new balances.
//
// Members pay their pledged steps first, capped by their live balance and the remaining target.
// The remainder is taken from the remaining live balances in member order.
package redeemsquadreward
