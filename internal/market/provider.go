// Package market fetches quotes, candlestick history, and instrument
// metadata from the upstream data vendors.
package market

import (
	"context"
	"net"

	"github.com/go-playground/validator/v10"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

// ProviderType selects the market data vendor backing the service.
type ProviderType string

const (
	ProviderITick   ProviderType = "itick"
	ProviderPolygon ProviderType = "polygon"
)

// DataProvider fetches quotes and candlestick history.
//
// Implementations translate their upstream failure modes into pkg/errors
// codes: ErrCodeUpstreamTimeout when the deadline passed,
// ErrCodeUpstreamUnreachable for transport or protocol trouble,
// ErrCodeUpstreamRejected when the vendor answered with its own error
// payload, and ErrCodeNoData / ErrCodeNoHistoricalData when the answer
// carries nothing usable.
type DataProvider interface {
	// StockQuote returns the latest real-time quote for a symbol.
	StockQuote(ctx context.Context, region, symbol string) (types.Quote, error)
	// Kline returns candlestick history, oldest bar first.
	Kline(ctx context.Context, query types.KlineQuery) (types.KlineBatch, error)
	// IndexQuote returns the latest quote for a market index code.
	IndexQuote(ctx context.Context, region, code string) (types.Quote, error)
	// Name identifies the provider in logs and error messages.
	Name() string
}

// SearchProvider looks up instruments matching a free-text query.
type SearchProvider interface {
	SymbolSearch(ctx context.Context, query string) ([]types.Instrument, error)
	Name() string
}

// Config holds the provider selection and its credentials.
type Config struct {
	ProviderType  ProviderType `validate:"required,oneof=itick polygon"`
	ITickToken    string       `validate:"required_if=ProviderType itick"`
	ITickBaseURL  string       `validate:"omitempty,url"`
	PolygonAPIKey string       `validate:"required_if=ProviderType polygon"`
}

// NewDataProvider constructs the configured market data provider.
func NewDataProvider(config Config, l *logger.Logger) (DataProvider, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data configuration", err)
	}

	switch config.ProviderType {
	case ProviderITick:
		return NewITickClient(config.ITickToken, config.ITickBaseURL, l), nil
	case ProviderPolygon:
		return NewPolygonClient(config.PolygonAPIKey, l)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "unsupported provider type: %s", config.ProviderType)
	}
}

// classifyTransportError maps a failed round trip onto the upstream error
// taxonomy. Deadline errors become timeouts, everything else counts as
// the vendor being unreachable.
func classifyTransportError(provider string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(errors.ErrCodeUpstreamTimeout, err, "%s request timed out", provider)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrapf(errors.ErrCodeUpstreamTimeout, err, "%s request timed out", provider)
	}

	return errors.Wrapf(errors.ErrCodeUpstreamUnreachable, err, "%s request failed", provider)
}
