// Package acceptinvitation implements an invitee joining a squad.
//
// Accepting refreshes the member's wallet balance snapshot. The squad turns active once every member
// accepted. An account belongs to at most one pending or active squad, so accepting is rejected while the
// account belongs to another one, open invitations included. Declining the other invitation clears the way.
package acceptinvitation
