// Package markredemptionused implements a partner accepting a redemption code.
//
// Only the status of a redemption record changes, from active to used. Used and expired
// redemptions are rejected with a MarkingRedemptionUsedFailed event as audit trail.
// Squad redemptions are owned by the squad host.
package markredemptionused
