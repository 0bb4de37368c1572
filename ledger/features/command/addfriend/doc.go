// Package addfriend implements one account adding another as a friend. The friendship is mutual
// and stored once per pair, so adding from either side a second time changes nothing.
package addfriend
