package types

import "encoding/json"

// Quote is a real-time quote snapshot. The typed fields cover what the
// service itself consumes; Raw carries the provider's data payload verbatim
// so proxy endpoints can pass it through untouched.
type Quote struct {
	Symbol        string    `json:"s"`
	LastPrice     FlexFloat `json:"ld"`
	Open          FlexFloat `json:"o"`
	High          FlexFloat `json:"h"`
	Low           FlexFloat `json:"l"`
	Change        FlexFloat `json:"ch"`
	ChangePercent FlexFloat `json:"chp"`
	Volume        FlexFloat `json:"v"`
	Turnover      FlexFloat `json:"tu"`
	Timestamp     int64     `json:"t"`

	Raw json.RawMessage `json:"-"`
}

// HasLastPrice reports whether the quote carries a usable trade price.
// Providers report zero or omit the field when no trade price is available.
func (q Quote) HasLastPrice() bool {
	return !q.LastPrice.IsMissing() && q.LastPrice.Float64() != 0
}

// KlineBatch is the result of a candlestick history fetch: the decoded bars
// for computation plus the verbatim upstream array for passthrough.
type KlineBatch struct {
	Bars PriceSeries
	Raw  json.RawMessage
}
