package calculator

// NonDecreasing reports, for each consecutive pair, whether values[i] >= values[i-1].
func NonDecreasing(values []float64) []bool {
	return pairwise(values, func(prev, cur float64) bool { return cur >= prev })
}

// NonIncreasing reports, for each consecutive pair, whether values[i] <= values[i-1].
func NonIncreasing(values []float64) []bool {
	return pairwise(values, func(prev, cur float64) bool { return cur <= prev })
}

func pairwise(values []float64, ok func(prev, cur float64) bool) []bool {
	if len(values) < 2 {
		return nil
	}
	out := make([]bool, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = ok(values[i-1], values[i])
	}
	return out
}

// CountTrue counts the true entries.
func CountTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// PassesWithTolerance reports whether at most tolerance entries are false.
// An empty series never passes.
func PassesWithTolerance(flags []bool, tolerance int) bool {
	if len(flags) == 0 {
		return false
	}
	return CountTrue(flags) >= len(flags)-tolerance
}
