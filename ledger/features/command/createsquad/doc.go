// Package createsquad implements a host opening a squad for a partner offer.
//
// The host joins as active member, every invitee gets a pending invitation. A host may not be a
// member of another pending or active squad, open invitations included, so the command is decided
// over the host's memberships, loaded in two phases by boundaries.LoadWithSquadsOf.
//
// The client supplies the squad id, which makes a retried creation a no-op. Invitees without an
// account are skipped and reported, duplicate invitees and the host in the invite list are ignored.
package createsquad
