// Package recordchallengeprogress implements replacing the progress of a participant. Reaching
// the goal completes the participation, after that and after the end of the challenge it is frozen.
package recordchallengeprogress
