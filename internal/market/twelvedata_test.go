package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

type TwelveDataTestSuite struct {
	suite.Suite
}

func TestTwelveDataSuite(t *testing.T) {
	suite.Run(t, new(TwelveDataTestSuite))
}

func (suite *TwelveDataTestSuite) TestSymbolSearchSuccess() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/symbol_search", r.URL.Path)
		suite.Equal("apple", r.URL.Query().Get("symbol"))
		suite.Equal("test-key", r.URL.Query().Get("apikey"))
		suite.Equal("30", r.URL.Query().Get("outputsize"))

		w.Write([]byte(`{"data":[
			{"symbol":"AAPL","instrument_name":"Apple Inc","exchange":"NASDAQ","mic_code":"XNAS","country":"United States","currency":"USD"},
			{"symbol":"APC","instrument_name":"Apple Inc","exchange":"XETRA","mic_code":"XETR","country":"Germany","currency":"EUR"}
		],"status":"ok"}`))
	}))
	defer server.Close()

	client := NewTwelveDataClient("test-key", server.URL, logger.NewTestLogger())

	matches, err := client.SymbolSearch(context.Background(), "apple")
	suite.Require().NoError(err)

	// The German listing is filtered out.
	suite.Require().Len(matches, 1)
	suite.Equal("AAPL", matches[0].Symbol)
}

func (suite *TwelveDataTestSuite) TestSymbolSearchRejection() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","code":401,"message":"invalid api key"}`))
	}))
	defer server.Close()

	client := NewTwelveDataClient("bad-key", server.URL, logger.NewTestLogger())

	_, err := client.SymbolSearch(context.Background(), "apple")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamRejected))

	rejection, ok := errors.AsUpstreamRejection(err)
	suite.Require().True(ok)
	suite.Equal(401, rejection.ProviderCode)
	suite.Equal("invalid api key", rejection.Message)
}

func (suite *TwelveDataTestSuite) TestFilterAcceptsEachUSMarker() {
	items := []types.Instrument{
		{Symbol: "A", Country: "United States"},
		{Symbol: "B", Country: "USA"},
		{Symbol: "C", Country: "us"},
		{Symbol: "D", Exchange: "NYSE American"},
		{Symbol: "E", Exchange: "nasdaq global select"},
		{Symbol: "F", MicCode: "xnys"},
		{Symbol: "G", Country: "Canada", Exchange: "TSX", MicCode: "XTSE"},
	}

	matches := FilterUSInstruments(items)

	symbols := make([]string, 0, len(matches))
	for _, m := range matches {
		symbols = append(symbols, m.Symbol)
	}

	suite.Equal([]string{"A", "B", "C", "D", "E", "F"}, symbols)
}

func (suite *TwelveDataTestSuite) TestFilterCapsAtEightPreservingOrder() {
	items := make([]types.Instrument, 0, 12)
	for _, s := range []string{"S0", "S1", "S2", "S3", "S4", "S5", "S6", "S7", "S8", "S9"} {
		items = append(items, types.Instrument{Symbol: s, Country: "US"})
	}

	matches := FilterUSInstruments(items)

	suite.Require().Len(matches, MaxSearchResults)
	suite.Equal("S0", matches[0].Symbol)
	suite.Equal("S7", matches[len(matches)-1].Symbol)
}

func (suite *TwelveDataTestSuite) TestFilterEmptyInput() {
	suite.Empty(FilterUSInstruments(nil))
	suite.Empty(FilterUSInstruments([]types.Instrument{}))
}
