package core_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/core"
)

func Test_GenerateRedemptionCode_MatchesFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^KX-[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{6}$`)

	for range 1000 {
		code := core.GenerateRedemptionCode()

		assert.Regexp(t, pattern, code)
		assert.Len(t, code, 9)
	}
}
