// Package indicator computes the technical statistics served alongside
// quotes: simple moving averages, Wilder RSI, annualized volatility,
// series extremes, and the price position versus each moving average.
//
// Every statistic is computed only when the series carries enough usable
// closes for its window; otherwise the corresponding field stays None
// instead of being filled with a shorter-window approximation.
package indicator

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
	"go.uber.org/zap"
)

const (
	maShortWindow  = 20
	maMediumWindow = 50
	maLongWindow   = 200

	rsiPeriod = 14

	volatilityWindow = 30
)

// Engine computes an IndicatorSet from a candlestick series.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates an Engine. The logger may be nil.
func NewEngine(l *logger.Logger) *Engine {
	return &Engine{logger: l}
}

// Compute derives the full indicator set from the series. Bars whose close
// is missing are dropped before any window math; a series with no usable
// close at all yields ErrCodeNoData. currentPrice overrides the reference
// price used for the vs_ma positions, falling back to the last usable
// close when None.
func (e *Engine) Compute(series types.PriceSeries, currentPrice optional.Option[float64]) (result types.IndicatorSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("indicator computation panicked", zap.Any("panic", r))
			}

			result = types.IndicatorSet{}
			err = errors.Newf(errors.ErrCodeComputation, "indicator computation panicked: %v", r)
		}
	}()

	closes := finiteValues(series.Closes())
	if len(closes) == 0 {
		return types.IndicatorSet{}, errors.New(errors.ErrCodeNoData, "price series has no usable closing prices")
	}

	price := currentPrice.TakeOr(closes[len(closes)-1])
	result.CurrentPrice = round2(price)

	result.MA20 = movingAverage(closes, maShortWindow)
	result.MA50 = movingAverage(closes, maMediumWindow)
	result.MA200 = movingAverage(closes, maLongWindow)

	rsi, rsiErr := wilderRSI(closes, rsiPeriod)
	switch {
	case rsiErr == nil:
		result.RSI = optional.Some(round2(rsi))
	case !errors.IsInsufficientDataError(rsiErr):
		return types.IndicatorSet{}, rsiErr
	}

	vol, volErr := annualizedVolatility(closes, volatilityWindow)
	switch {
	case volErr == nil:
		result.Volatility30D = optional.Some(round2(vol))
	case !errors.IsInsufficientDataError(volErr):
		return types.IndicatorSet{}, volErr
	}

	high, low, extErr := seriesExtremes(series.Highs(), series.Lows())
	if extErr != nil {
		return types.IndicatorSet{}, extErr
	}

	result.High52W = round2(high)
	result.Low52W = round2(low)

	result.VsMA50 = positionVersus(price, result.MA50)
	result.VsMA200 = positionVersus(price, result.MA200)

	if e.logger != nil {
		e.logger.Debug("computed indicator set",
			zap.Int("bars", len(series)),
			zap.Int("usable_closes", len(closes)),
			zap.Float64("current_price", result.CurrentPrice),
		)
	}

	return result, nil
}

// movingAverage wraps simpleMovingAverage for the engine's fixed windows,
// mapping an insufficient series to None.
func movingAverage(closes []float64, window int) optional.Option[float64] {
	value, err := simpleMovingAverage(closes, window)
	if err != nil {
		return optional.None[float64]()
	}

	return optional.Some(round2(value))
}

// positionVersus reports whether price sits above or below the moving
// average. The position is None whenever the average itself is None; a
// price exactly on the average counts as below.
func positionVersus(price float64, ma optional.Option[float64]) optional.Option[types.PricePosition] {
	if ma.IsNone() {
		return optional.None[types.PricePosition]()
	}

	if price > ma.Unwrap() {
		return optional.Some(types.PositionAbove)
	}

	return optional.Some(types.PositionBelow)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteValues filters out NaN and infinite entries, preserving order.
func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))

	for _, v := range values {
		if isFinite(v) {
			out = append(out, v)
		}
	}

	return out
}
