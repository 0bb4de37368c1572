// Package listredemptions provides the redemption records of an account, newest first.
//
// The list holds the account's own redemptions and the squad redemptions of every squad the account
// is a member of. Status is projected at the query instant, so an elapsed validity shows as expired.
//
// Squad redemptions are owned by the host, which is why the handler queries in three phases:
// the memberships, then the squads, then the records and usage of the squad redemptions found.
package listredemptions
