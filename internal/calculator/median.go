package calculator

import (
	"errors"
	"sort"
)

// Median returns the middle value, averaging the two middle values for even counts.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no values provided")
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// RollingMedian returns, for each index, the median of the up-to-period
// values ending at that index. Early indexes use what is available.
func RollingMedian(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period < 1 {
		period = 1
	}
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		out[i], _ = Median(values[start : i+1])
	}
	return out
}
