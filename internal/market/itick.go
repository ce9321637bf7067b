package market

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
	"go.uber.org/zap"
)

const (
	itickBaseURL = "https://api.itick.org"

	itickQuoteTimeout = 10 * time.Second
	itickKlineTimeout = 10 * time.Second
	itickIndexTimeout = 5 * time.Second
)

// ITickClient talks to the iTick REST API. Authentication is a bare token
// header; every response arrives inside the same {code, msg, data}
// envelope where code zero means success.
type ITickClient struct {
	http     *resty.Client
	logger   *logger.Logger
	validate *validator.Validate
}

// NewITickClient builds a client for the given token. An empty baseURL
// falls back to the public endpoint.
func NewITickClient(token, baseURL string, l *logger.Logger) *ITickClient {
	if baseURL == "" {
		baseURL = itickBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("accept", "application/json").
		SetHeader("token", token)

	return &ITickClient{
		http:     client,
		logger:   l,
		validate: validator.New(),
	}
}

func (c *ITickClient) Name() string { return "itick" }

type itickEnvelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// get performs one round trip and unwraps the envelope. A non-zero
// envelope code surfaces as an upstream rejection carrying the vendor's
// own code and message.
func (c *ITickClient) get(ctx context.Context, path string, params map[string]string, timeout time.Duration) (*itickEnvelope, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, classifyTransportError(c.Name(), err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Newf(errors.ErrCodeUpstreamUnreachable, "itick returned HTTP %d", resp.StatusCode())
	}

	var envelope itickEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamUnreachable, "itick sent malformed JSON", err)
	}

	if envelope.Code != 0 {
		rejection := errors.NewUpstreamRejectionError(envelope.Code, resp.StatusCode(), envelope.Msg)

		return nil, errors.Wrap(errors.ErrCodeUpstreamRejected, envelope.Msg, rejection)
	}

	return &envelope, nil
}

// StockQuote fetches the real-time quote for region:symbol.
func (c *ITickClient) StockQuote(ctx context.Context, region, symbol string) (types.Quote, error) {
	envelope, err := c.get(ctx, "/stock/quote", map[string]string{
		"region": region,
		"code":   symbol,
	}, itickQuoteTimeout)
	if err != nil {
		return types.Quote{}, err
	}

	if emptyPayload(envelope.Data) {
		return types.Quote{}, errors.Newf(errors.ErrCodeNoData, "no data available for %s:%s", region, symbol)
	}

	var quote types.Quote
	if err := json.Unmarshal(envelope.Data, &quote); err != nil {
		return types.Quote{}, errors.Wrap(errors.ErrCodeUpstreamUnreachable, "itick sent malformed quote payload", err)
	}

	quote.Raw = envelope.Data

	c.logger.Debug("fetched stock quote",
		zap.String("region", region),
		zap.String("symbol", symbol),
	)

	return quote, nil
}

// Kline fetches candlestick history for the query.
func (c *ITickClient) Kline(ctx context.Context, query types.KlineQuery) (types.KlineBatch, error) {
	if err := c.validate.Struct(query); err != nil {
		return types.KlineBatch{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid kline query", err)
	}

	envelope, err := c.get(ctx, "/stock/kline", map[string]string{
		"region": query.Region,
		"code":   query.Symbol,
		"kType":  string(query.KType),
		"limit":  strconv.Itoa(query.Limit),
	}, itickKlineTimeout)
	if err != nil {
		return types.KlineBatch{}, err
	}

	if emptyPayload(envelope.Data) {
		return types.KlineBatch{}, errors.Newf(errors.ErrCodeNoHistoricalData,
			"no historical data available for %s:%s", query.Region, query.Symbol)
	}

	var bars types.PriceSeries
	if err := json.Unmarshal(envelope.Data, &bars); err != nil {
		return types.KlineBatch{}, errors.Wrap(errors.ErrCodeUpstreamUnreachable, "itick sent malformed kline payload", err)
	}

	if len(bars) == 0 {
		return types.KlineBatch{}, errors.Newf(errors.ErrCodeNoHistoricalData,
			"no historical data available for %s:%s", query.Region, query.Symbol)
	}

	c.logger.Debug("fetched kline history",
		zap.String("region", query.Region),
		zap.String("symbol", query.Symbol),
		zap.String("ktype", string(query.KType)),
		zap.Int("bars", len(bars)),
	)

	return types.KlineBatch{Bars: bars, Raw: envelope.Data}, nil
}

// IndexQuote fetches the real-time quote for a market index code. iTick
// serves index quotes from a separate endpoint; index calls run on a
// tighter deadline than stock quotes.
func (c *ITickClient) IndexQuote(ctx context.Context, region, code string) (types.Quote, error) {
	envelope, err := c.get(ctx, "/indices/quote", map[string]string{
		"region": region,
		"code":   code,
	}, itickIndexTimeout)
	if err != nil {
		return types.Quote{}, err
	}

	if emptyPayload(envelope.Data) {
		return types.Quote{}, errors.Newf(errors.ErrCodeNoData, "no data available for index %s", code)
	}

	var quote types.Quote
	if err := json.Unmarshal(envelope.Data, &quote); err != nil {
		return types.Quote{}, errors.Wrap(errors.ErrCodeUpstreamUnreachable, "itick sent malformed index payload", err)
	}

	quote.Raw = envelope.Data

	return quote, nil
}

// emptyPayload reports whether the envelope data slot carries nothing.
func emptyPayload(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "{}", "[]":
		return true
	}

	return false
}
