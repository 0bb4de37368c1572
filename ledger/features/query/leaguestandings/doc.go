// Package leaguestandings ranks all accounts of a monthly period within their league tier.
//
// The tier comes from the lifetime steps, the rank from the steps recorded for days of the period.
// A day counts with its latest sample only, the step history of the wallet is bounded and would miss
// older days, so the projection reads the recorded samples.
package leaguestandings
