// Package activesquad provides the pending or active squad of an account.
//
// A squad the account hosts or joined wins over open invitations, among several open invitations
// the oldest squad is returned.
package activesquad
