// Package registeraccount implements the Register Account use case.
//
// Signing up opens a wallet with a display name and an avatar. Registering an account
// that is already open is a no-op, so clients can safely retry the signup.
package registeraccount
