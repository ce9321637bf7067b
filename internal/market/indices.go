package market

import (
	"context"

	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"go.uber.org/zap"
)

// TrackedIndices is the fixed set of market indices the indices endpoint
// reports on. iTick files these US benchmarks under the GB region.
var TrackedIndices = []types.IndexSpec{
	{Name: "S&P 500", Code: "SPX", Region: "GB"},
	{Name: "NASDAQ Composite", Code: "IXIC", Region: "GB"},
	{Name: "Dow Jones Industrial", Code: "DJI", Region: "GB"},
}

// FetchIndices collects a quote for every tracked index, skipping the
// ones the provider cannot serve right now. The listing is best effort:
// a partial or even empty result is still a valid answer.
func FetchIndices(ctx context.Context, provider DataProvider, l *logger.Logger) []types.IndexEntry {
	entries := make([]types.IndexEntry, 0, len(TrackedIndices))

	for _, spec := range TrackedIndices {
		quote, err := provider.IndexQuote(ctx, spec.Region, spec.Code)
		if err != nil {
			l.Warn("index quote unavailable",
				zap.String("index", spec.Code),
				zap.Error(err),
			)

			continue
		}

		entries = append(entries, types.IndexEntry{
			Name:          spec.Name,
			Symbol:        spec.Code,
			LastPrice:     quote.LastPrice.OrZero(),
			Change:        quote.Change.OrZero(),
			ChangePercent: quote.ChangePercent.OrZero(),
		})
	}

	return entries
}
