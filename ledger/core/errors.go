package core

import (
	"errors"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrSquadNotFound      = errors.New("squad not found")
	ErrRedemptionNotFound = errors.New("redemption not found")

	// ErrMissingIdentifier is returned for commands and queries lacking a required id.
	ErrMissingIdentifier = errors.New("missing identifier")

	ErrInvalidLeaguePeriod = errors.New("league period must be formatted YYYY-MM")
)
