// Package redeemoffer implements the single user redemption of a partner offer.
//
// The debit and the minted redemption code are one OfferRedeemed event, decided over a boundary
// spanning the wallet and every redemption carrying the candidate code. That makes concurrent
// redemptions of one wallet conflict instead of double spending, and it makes the code unique.
// Rejected redemptions append a RedeemingOfferFailed event as audit trail.
//
// The client operation id is an idempotency key: replaying an applied operation returns
// the original redemption.
package redeemoffer
