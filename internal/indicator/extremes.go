package indicator

import (
	"math"

	"github.com/tickerlens/tickerlens/pkg/errors"
)

// seriesExtremes returns the highest high and lowest low across the whole
// series, ignoring missing values. The window is bounded by whatever range
// the caller fetched, so with daily bars it covers at most the trailing
// year requested upstream.
func seriesExtremes(highs, lows []float64) (float64, float64, error) {
	high := math.Inf(-1)
	low := math.Inf(1)
	foundHigh := false
	foundLow := false

	for _, h := range highs {
		if isFinite(h) {
			foundHigh = true

			if h > high {
				high = h
			}
		}
	}

	for _, l := range lows {
		if isFinite(l) {
			foundLow = true

			if l < low {
				low = l
			}
		}
	}

	if !foundHigh || !foundLow {
		return 0, 0, errors.New(errors.ErrCodeComputation, "price series has no usable high/low values")
	}

	return high, low, nil
}
