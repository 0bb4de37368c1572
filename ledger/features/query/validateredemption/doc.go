// Package validateredemption answers whether an account could spend a number of steps right now.
//
// The answer is advisory: it reads the wallet without a consistency guarantee and has no side effects.
// The redeemoffer command re-runs the same checks inside its consistency boundary.
package validateredemption
