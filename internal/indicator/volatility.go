package indicator

import (
	"math"

	"github.com/tickerlens/tickerlens/pkg/errors"
)

// tradingDaysPerYear scales daily return dispersion to an annual figure.
const tradingDaysPerYear = 252

// annualizedVolatility computes the sample standard deviation of the last
// window daily returns, scaled by the square root of the trading days in
// a year. Returns that divide by a zero close are skipped. Fewer than two
// usable returns is insufficient data: a sample deviation needs at least
// two observations.
func annualizedVolatility(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "volatility window must be positive, got %d", window)
	}

	returns := make([]float64, 0, len(closes))

	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}

		r := closes[i]/closes[i-1] - 1
		if isFinite(r) {
			returns = append(returns, r)
		}
	}

	if len(returns) < 2 {
		return 0, errors.NewInsufficientDataErrorf(2, len(returns),
			"need at least 2 daily returns for volatility, have %d", len(returns))
	}

	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}

	return sampleStdDev(returns) * math.Sqrt(tradingDaysPerYear), nil
}

// sampleStdDev computes the n-1 standard deviation. The caller guarantees
// at least two values.
func sampleStdDev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}

	mean /= float64(len(values))

	sumSquares := 0.0

	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}

	return math.Sqrt(sumSquares / float64(len(values)-1))
}
