package types

// Instrument is one symbol-search hit, using the search provider's wire
// field names.
type Instrument struct {
	Symbol           string `json:"symbol"`
	InstrumentName   string `json:"instrument_name"`
	Exchange         string `json:"exchange"`
	MicCode          string `json:"mic_code"`
	ExchangeTimezone string `json:"exchange_timezone"`
	InstrumentType   string `json:"instrument_type"`
	Country          string `json:"country"`
	Currency         string `json:"currency"`
}
