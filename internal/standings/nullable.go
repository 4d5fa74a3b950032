package standings

// Shared nullable-numeric helpers. Every builder derives completeness through
// these so that "missing" stays nil end to end and is never defaulted to 0.

// addOpt folds v into a running slot sum. A nil sum with a present value
// starts the sum; a nil value leaves the sum untouched.
func addOpt(sum, v *int) *int {
	if v == nil {
		return sum
	}
	if sum == nil {
		n := *v
		return &n
	}
	n := *sum + *v
	return &n
}

// complete reports whether all three game slots are present.
func complete(g1, g2, g3 *int) bool {
	return g1 != nil && g2 != nil && g3 != nil
}

// seriesTotal sums a three-game series, or nil when any slot is missing.
func seriesTotal(g1, g2, g3 *int) *int {
	if !complete(g1, g2, g3) {
		return nil
	}
	n := *g1 + *g2 + *g3
	return &n
}

// orZero unwraps a nullable value for arithmetic where absence counts as zero.
func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func intPtr(n int) *int {
	return &n
}

// DisplayName prefers the nickname over the first name.
func DisplayName(first, last, nickname string) string {
	given := first
	if nickname != "" {
		given = nickname
	}
	if last == "" {
		return given
	}
	return given + " " + last
}
