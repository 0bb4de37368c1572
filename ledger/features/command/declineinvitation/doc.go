// Package declineinvitation implements a member declining a squad.
//
// A single decline cancels the whole squad, there is no partial squad.
package declineinvitation
