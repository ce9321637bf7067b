package indicator

import (
	"github.com/tickerlens/tickerlens/pkg/errors"
)

// simpleMovingAverage computes the arithmetic mean of the last window
// closes. The window must fit entirely inside the series; a partial
// window is reported as insufficient data rather than averaged short.
func simpleMovingAverage(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidParameter, "moving average window must be positive, got %d", window)
	}

	if len(closes) < window {
		return 0, errors.NewInsufficientDataErrorf(window, len(closes),
			"need %d closes for a %d-bar moving average, have %d", window, window, len(closes))
	}

	sum := 0.0
	for _, c := range closes[len(closes)-window:] {
		sum += c
	}

	return sum / float64(window), nil
}
