// Package challengeprogress provides the leaderboard of a challenge and, when an account is given,
// its own participation.
package challengeprogress
