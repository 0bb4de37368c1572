package core

// Balance is the wallet triple of an account.
type Balance struct {
	Earned    int
	Spent     int
	Available int
}

// CalculateBalance derives the spendable steps, negative inputs count as zero.
func CalculateBalance(earned int, spent int) Balance {
	earned = max(0, earned)
	spent = max(0, spent)

	return Balance{
		Earned:    earned,
		Spent:     spent,
		Available: max(0, earned-spent),
	}
}

// Covers returns true if the available steps are enough to pay stepsRequired.
func (b Balance) Covers(stepsRequired int) bool {
	return b.Available >= stepsRequired
}
