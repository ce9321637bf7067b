package market

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
	"go.uber.org/zap"
)

// PolygonClient serves the DataProvider surface from the Polygon REST
// API. Index codes are translated to Polygon's "I:" ticker prefix and the
// region parameter is ignored, Polygon only covers US listings here.
type PolygonClient struct {
	client   *polygon.Client
	logger   *logger.Logger
	validate *validator.Validate
}

// NewPolygonClient creates a Polygon-backed provider.
func NewPolygonClient(apiKey string, l *logger.Logger) (*PolygonClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	return &PolygonClient{
		client:   polygon.New(apiKey),
		logger:   l,
		validate: validator.New(),
	}, nil
}

func (c *PolygonClient) Name() string { return "polygon" }

// StockQuote maps the Polygon ticker snapshot onto a quote.
func (c *PolygonClient) StockQuote(ctx context.Context, _ string, symbol string) (types.Quote, error) {
	//nolint:exhaustruct // third-party struct with many optional fields
	params := &models.GetTickerSnapshotParams{
		Ticker:     symbol,
		Locale:     models.US,
		MarketType: models.Stocks,
	}

	snapshot, err := c.client.GetTickerSnapshot(ctx, params)
	if err != nil {
		return types.Quote{}, classifyPolygonError(err, errors.ErrCodeNoData, symbol)
	}

	ticker := snapshot.Snapshot

	quote := types.Quote{
		Symbol:        symbol,
		LastPrice:     types.FlexFloat(ticker.LastTrade.Price),
		Open:          types.FlexFloat(ticker.Day.Open),
		High:          types.FlexFloat(ticker.Day.High),
		Low:           types.FlexFloat(ticker.Day.Low),
		Change:        types.FlexFloat(ticker.TodaysChange),
		ChangePercent: types.FlexFloat(ticker.TodaysChangePerc),
		Volume:        types.FlexFloat(ticker.Day.Volume),
		Timestamp:     time.Time(ticker.Updated).UnixMilli(),
	}

	// The normalized quote doubles as the passthrough payload.
	raw, err := json.Marshal(quote)
	if err != nil {
		return types.Quote{}, errors.Wrap(errors.ErrCodeComputation, "failed to encode quote payload", err)
	}

	quote.Raw = raw

	return quote, nil
}

// Kline streams aggregates through Polygon's paginated iterator and trims
// the batch to the requested limit, keeping the most recent bars.
func (c *PolygonClient) Kline(ctx context.Context, query types.KlineQuery) (types.KlineBatch, error) {
	if err := c.validate.Struct(query); err != nil {
		return types.KlineBatch{}, errors.Wrap(errors.ErrCodeInvalidParameter, "invalid kline query", err)
	}

	now := time.Now()

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     query.Symbol,
		Multiplier: klineMultiplier(query.KType),
		Timespan:   klineTimespan(query.KType),
		From:       models.Millis(klineLookback(query.KType, now)),
		To:         models.Millis(now),
	}.WithLimit(50000).WithOrder(models.Asc)

	iter := c.client.ListAggs(ctx, params)

	bars := make(types.PriceSeries, 0, query.Limit)

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.PriceBar{
			Timestamp: time.Time(agg.Timestamp).UnixMilli(),
			Open:      types.FlexFloat(agg.Open),
			High:      types.FlexFloat(agg.High),
			Low:       types.FlexFloat(agg.Low),
			Close:     types.FlexFloat(agg.Close),
			Volume:    types.FlexFloat(agg.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return types.KlineBatch{}, classifyPolygonError(err, errors.ErrCodeNoHistoricalData, query.Symbol)
	}

	if len(bars) == 0 {
		return types.KlineBatch{}, errors.Newf(errors.ErrCodeNoHistoricalData,
			"no historical data available for %s:%s", query.Region, query.Symbol)
	}

	if len(bars) > query.Limit {
		bars = bars[len(bars)-query.Limit:]
	}

	c.logger.Debug("fetched polygon aggregates",
		zap.String("symbol", query.Symbol),
		zap.Int("bars", len(bars)),
	)

	raw, err := json.Marshal(bars)
	if err != nil {
		return types.KlineBatch{}, errors.Wrap(errors.ErrCodeComputation, "failed to encode bar payload", err)
	}

	return types.KlineBatch{Bars: bars, Raw: raw}, nil
}

// IndexQuote derives the index level and day change from the two most
// recent daily aggregates, since Polygon's snapshot endpoints do not
// cover indices.
func (c *PolygonClient) IndexQuote(ctx context.Context, _ string, code string) (types.Quote, error) {
	ticker := "I:" + code
	now := time.Now()

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(now.AddDate(0, 0, -14)),
		To:         models.Millis(now),
	}.WithLimit(50).WithOrder(models.Asc)

	iter := c.client.ListAggs(ctx, params)

	var aggs []models.Agg
	for iter.Next() {
		aggs = append(aggs, iter.Item())
	}

	if err := iter.Err(); err != nil {
		return types.Quote{}, classifyPolygonError(err, errors.ErrCodeNoData, ticker)
	}

	if len(aggs) == 0 {
		return types.Quote{}, errors.Newf(errors.ErrCodeNoData, "no data available for index %s", code)
	}

	last := aggs[len(aggs)-1]
	quote := types.Quote{
		Symbol:    code,
		LastPrice: types.FlexFloat(last.Close),
		Open:      types.FlexFloat(last.Open),
		High:      types.FlexFloat(last.High),
		Low:       types.FlexFloat(last.Low),
		Volume:    types.FlexFloat(last.Volume),
		Timestamp: time.Time(last.Timestamp).UnixMilli(),
	}

	if len(aggs) > 1 {
		prev := aggs[len(aggs)-2]
		change := last.Close - prev.Close
		quote.Change = types.FlexFloat(change)

		if prev.Close != 0 {
			quote.ChangePercent = types.FlexFloat(change / prev.Close * 100)
		}
	}

	return quote, nil
}

// classifyPolygonError maps a Polygon client error onto the upstream
// taxonomy. A 404 becomes the caller's no-data code so both vendors
// surface missing symbols the same way.
func classifyPolygonError(err error, notFoundCode errors.ErrorCode, subject string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(errors.ErrCodeUpstreamTimeout, err, "polygon request timed out")
	}

	var errResp *models.ErrorResponse
	if errors.As(err, &errResp) {
		if errResp.StatusCode == http.StatusNotFound {
			return errors.Newf(notFoundCode, "no data available for %s", subject)
		}

		rejection := errors.NewUpstreamRejectionError(errResp.StatusCode, errResp.StatusCode, errResp.Error())

		return errors.Wrap(errors.ErrCodeUpstreamRejected, errResp.Error(), rejection)
	}

	return classifyTransportError("polygon", err)
}
