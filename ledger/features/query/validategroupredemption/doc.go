// Package validategroupredemption answers whether the host could redeem the squad reward right now.
//
// The balance snapshots of the members are refreshed from their live wallets before the checks run,
// so a member who spent steps since joining is accounted for. The answer is advisory,
// redeemsquadreward re-runs the checks inside its consistency boundary.
package validategroupredemption
