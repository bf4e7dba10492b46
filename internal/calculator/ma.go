package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

// CalculateSMA computes the simple moving average of the last period values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sma := talib.Sma(values[len(values)-period:], period)
	return sma[period-1], nil
}

// Mean returns the arithmetic mean of all values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errors.New("no values provided")
	}
	return CalculateSMA(values, len(values))
}
