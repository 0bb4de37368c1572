package core

import (
	"math/rand/v2"
	"strings"
)

const (
	RedemptionCodePrefix   = "KX-"
	RedemptionCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	redemptionCodeLength   = 6
)

// RedemptionCodeGenerator mints human-presentable redemption codes.
type RedemptionCodeGenerator func() string

// GenerateRedemptionCode returns a code like KX-7QHM2P.
// Uniqueness is not guaranteed here, the redeem commands check it against existing codes.
func GenerateRedemptionCode() string {
	var sb strings.Builder
	sb.Grow(len(RedemptionCodePrefix) + redemptionCodeLength)
	sb.WriteString(RedemptionCodePrefix)

	for range redemptionCodeLength {
		sb.WriteByte(RedemptionCodeAlphabet[rand.IntN(len(RedemptionCodeAlphabet))])
	}

	return sb.String()
}
