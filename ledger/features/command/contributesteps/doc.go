// Package contributesteps implements a member pledging steps towards the squad target.
//
// Pledged steps stay in the member's wallet until the squad reward is redeemed, so a pledge is
// capped by the live available balance minus the member's earlier pledges. The wallet is part of
// the boundary, a concurrent single redemption makes the pledge retry against the new balance.
package contributesteps
