package types

// IndexSpec names one market index to fetch for the indices endpoint.
type IndexSpec struct {
	Name   string
	Code   string
	Region string
}

// IndexEntry is one successfully fetched index quote in the indices
// response.
type IndexEntry struct {
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	LastPrice     FlexFloat `json:"last_price"`
	Change        FlexFloat `json:"change"`
	ChangePercent FlexFloat `json:"change_percent"`
}
