package types

import (
	"github.com/moznion/go-optional"
)

// PricePosition locates the current price relative to a moving average.
type PricePosition string

const (
	PositionAbove PricePosition = "above"
	PositionBelow PricePosition = "below"
)

// IndicatorSet is the fixed set of technical indicators computed from one
// price series. Window-bound indicators are None when the series holds fewer
// bars than the window requires; consumers see JSON null, never a sentinel
// number. An IndicatorSet is built fresh per request and never cached.
type IndicatorSet struct {
	MA20          optional.Option[float64] `json:"ma_20"`
	MA50          optional.Option[float64] `json:"ma_50"`
	MA200         optional.Option[float64] `json:"ma_200"`
	RSI           optional.Option[float64] `json:"rsi"`
	Volatility30D optional.Option[float64] `json:"volatility_30d"`

	// High52W and Low52W are the extremes over the whole supplied series.
	// The wire names assume the caller requested roughly a year of daily
	// bars; no window length is enforced.
	High52W      float64 `json:"high_52w"`
	Low52W       float64 `json:"low_52w"`
	CurrentPrice float64 `json:"current_price"`

	VsMA50  optional.Option[PricePosition] `json:"vs_ma50"`
	VsMA200 optional.Option[PricePosition] `json:"vs_ma200"`
}
