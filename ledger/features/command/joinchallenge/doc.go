// Package joinchallenge implements an account joining a challenge of the catalog. The goal and
// the end of the challenge are copied into the participation, later progress is judged against them.
package joinchallenge
