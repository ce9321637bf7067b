package indicator

import (
	"github.com/tickerlens/tickerlens/pkg/errors"
)

// wilderRSI computes the Relative Strength Index over the whole series
// using Wilder's smoothing: the first period deltas seed the averages and
// every later delta is blended in with weight 1/period. At least period+1
// closes are required to form the first period deltas.
func wilderRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "RSI period must be positive, got %d", period)
	}

	if len(closes) < period+1 {
		return 0, errors.NewInsufficientDataErrorf(period+1, len(closes),
			"need %d closes for a %d-period RSI, have %d", period+1, period, len(closes))
	}

	gains := make([]float64, 0, len(closes)-1)
	losses := make([]float64, 0, len(closes)-1)

	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains = append(gains, change)
			losses = append(losses, 0)
		} else {
			gains = append(gains, 0)
			losses = append(losses, -change)
		}
	}

	avgGain := 0.0
	avgLoss := 0.0

	// First averages over the seed window.
	for i := 0; i < period; i++ {
		avgGain += gains[i]
		avgLoss += losses[i]
	}

	avgGain /= float64(period)
	avgLoss /= float64(period)

	// Wilder's smoothing over the remainder of the series.
	for i := period; i < len(gains); i++ {
		avgGain = (avgGain*float64(period-1) + gains[i]) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + losses[i]) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs)), nil
}
