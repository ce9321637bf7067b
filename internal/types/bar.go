package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that decodes leniently from JSON. Numbers, numeric
// strings, and null are all accepted; anything non-numeric decodes to NaN so
// a single bad entry marks itself as missing instead of failing the whole
// payload. NaN marshals back out as null.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = FlexFloat(math.NaN())

		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = FlexFloat(math.NaN())

			return nil
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*f = FlexFloat(math.NaN())

			return nil
		}

		*f = FlexFloat(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = FlexFloat(math.NaN())

		return nil
	}

	*f = FlexFloat(v)

	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}

	return json.Marshal(v)
}

// Float64 returns the underlying value. The value is NaN when missing.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// IsMissing reports whether the value decoded from a non-numeric entry.
func (f FlexFloat) IsMissing() bool {
	return math.IsNaN(float64(f))
}

// OrZero returns the value with missing entries coerced to zero, for
// response fields that default to zero rather than null.
func (f FlexFloat) OrZero() FlexFloat {
	if f.IsMissing() {
		return 0
	}

	return f
}

// PriceBar is one aggregated trading-period sample using the provider's kline
// wire names. Bars are ordered oldest to newest within a PriceSeries.
type PriceBar struct {
	Timestamp int64     `json:"t"`
	Open      FlexFloat `json:"o"`
	High      FlexFloat `json:"h"`
	Low       FlexFloat `json:"l"`
	Close     FlexFloat `json:"c"`
	Volume    FlexFloat `json:"v"`
	Turnover  FlexFloat `json:"tu"`
}

// PriceSeries is a time-ordered sequence of price bars, oldest first.
type PriceSeries []PriceBar

// Closes returns the close column. Missing entries are NaN.
func (s PriceSeries) Closes() []float64 {
	values := make([]float64, len(s))
	for i, bar := range s {
		values[i] = bar.Close.Float64()
	}

	return values
}

// Highs returns the high column. Missing entries are NaN.
func (s PriceSeries) Highs() []float64 {
	values := make([]float64, len(s))
	for i, bar := range s {
		values[i] = bar.High.Float64()
	}

	return values
}

// Lows returns the low column. Missing entries are NaN.
func (s PriceSeries) Lows() []float64 {
	values := make([]float64, len(s))
	for i, bar := range s {
		values[i] = bar.Low.Float64()
	}

	return values
}
