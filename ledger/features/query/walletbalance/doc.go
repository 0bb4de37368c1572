// Package walletbalance provides the wallet of one account: the balance triple, the league tier,
// the daily redemption counter and the recorded step history.
package walletbalance
