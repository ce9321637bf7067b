package market

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
	"go.uber.org/zap"
)

const (
	twelveDataBaseURL = "https://api.twelvedata.com"
	twelveDataTimeout = 5 * time.Second

	// searchOutputSize is requested from the vendor before local
	// filtering; MaxSearchResults caps what the service returns.
	searchOutputSize = "30"
	MaxSearchResults = 8
)

// TwelveDataClient implements SearchProvider against the TwelveData
// symbol_search endpoint. The API key travels as a query parameter.
type TwelveDataClient struct {
	http   *resty.Client
	logger *logger.Logger
}

// NewTwelveDataClient builds a search client. An empty baseURL falls back
// to the public endpoint.
func NewTwelveDataClient(apiKey, baseURL string, l *logger.Logger) *TwelveDataClient {
	if baseURL == "" {
		baseURL = twelveDataBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetQueryParam("apikey", apiKey)

	return &TwelveDataClient{
		http:   client,
		logger: l,
	}
}

func (c *TwelveDataClient) Name() string { return "twelvedata" }

type twelveDataSearchResponse struct {
	Data    []types.Instrument `json:"data"`
	Status  string             `json:"status"`
	Code    int                `json:"code"`
	Message string             `json:"message"`
}

// SymbolSearch returns US-listed instruments matching the query, capped
// at MaxSearchResults.
func (c *TwelveDataClient) SymbolSearch(ctx context.Context, query string) ([]types.Instrument, error) {
	ctx, cancel := context.WithTimeout(ctx, twelveDataTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":     query,
			"outputsize": searchOutputSize,
		}).
		Get("/symbol_search")
	if err != nil {
		return nil, classifyTransportError(c.Name(), err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeUpstreamUnreachable, "twelvedata returned HTTP %d", resp.StatusCode())
	}

	var payload twelveDataSearchResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamUnreachable, "twelvedata sent malformed JSON", err)
	}

	if payload.Status == "error" {
		rejection := errors.NewUpstreamRejectionError(payload.Code, resp.StatusCode(), payload.Message)

		return nil, errors.Wrap(errors.ErrCodeUpstreamRejected, payload.Message, rejection)
	}

	matches := FilterUSInstruments(payload.Data)

	c.logger.Debug("symbol search completed",
		zap.String("query", query),
		zap.Int("upstream", len(payload.Data)),
		zap.Int("matches", len(matches)),
	)

	return matches, nil
}

// usMICCodes are the MIC identifiers of the three US venues the filter
// accepts outright.
var usMICCodes = map[string]struct{}{
	"XNAS": {},
	"XNYS": {},
	"XASE": {},
}

var usExchangeNames = []string{"NASDAQ", "NYSE", "AMEX"}

// FilterUSInstruments keeps instruments listed on US venues, preserving
// the vendor's order and capping the result at MaxSearchResults.
func FilterUSInstruments(items []types.Instrument) []types.Instrument {
	out := make([]types.Instrument, 0, MaxSearchResults)

	for _, item := range items {
		if !isUSListed(item) {
			continue
		}

		out = append(out, item)
		if len(out) == MaxSearchResults {
			break
		}
	}

	return out
}

// isUSListed accepts an instrument when its country, exchange name, or
// MIC code points at a US venue.
func isUSListed(item types.Instrument) bool {
	switch strings.ToUpper(item.Country) {
	case "US", "USA", "UNITED STATES":
		return true
	}

	exchange := strings.ToUpper(item.Exchange)
	for _, venue := range usExchangeNames {
		if strings.Contains(exchange, venue) {
			return true
		}
	}

	_, ok := usMICCodes[strings.ToUpper(item.MicCode)]

	return ok
}
