package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

type ITickClientTestSuite struct {
	suite.Suite
}

func TestITickClientSuite(t *testing.T) {
	suite.Run(t, new(ITickClientTestSuite))
}

func (suite *ITickClientTestSuite) newClient(handler http.HandlerFunc) (*ITickClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewITickClient("test-token", server.URL, logger.NewTestLogger())

	return client, server
}

func (suite *ITickClientTestSuite) TestStockQuoteSuccess() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/stock/quote", r.URL.Path)
		suite.Equal("test-token", r.Header.Get("token"))
		suite.Equal("US", r.URL.Query().Get("region"))
		suite.Equal("AAPL", r.URL.Query().Get("code"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":0,"msg":"ok","data":{"s":"AAPL","ld":189.95,"o":"188.20","h":190.5,"l":187.1,"ch":1.52,"chp":0.81,"v":52000000,"t":1700000000000}}`))
	})
	defer server.Close()

	quote, err := client.StockQuote(context.Background(), "US", "AAPL")
	suite.Require().NoError(err)

	suite.Equal("AAPL", quote.Symbol)
	suite.Equal(189.95, quote.LastPrice.Float64())
	suite.True(quote.HasLastPrice())

	// Numbers quoted as strings still parse.
	suite.Equal(188.20, quote.Open.Float64())

	suite.NotEmpty(quote.Raw)
}

func (suite *ITickClientTestSuite) TestStockQuoteRejection() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":40004,"msg":"symbol not supported","data":null}`))
	})
	defer server.Close()

	_, err := client.StockQuote(context.Background(), "US", "NOPE")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamRejected))

	rejection, ok := errors.AsUpstreamRejection(err)
	suite.Require().True(ok)
	suite.Equal(40004, rejection.ProviderCode)
	suite.Equal("symbol not supported", rejection.Message)
}

func (suite *ITickClientTestSuite) TestStockQuoteEmptyPayloadIsNoData() {
	for _, data := range []string{"null", "{}", "[]"} {
		client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":0,"msg":"ok","data":` + data + `}`))
		})

		_, err := client.StockQuote(context.Background(), "US", "AAPL")
		suite.Require().Error(err)
		suite.True(errors.HasCode(err, errors.ErrCodeNoData), "data=%s", data)

		server.Close()
	}
}

func (suite *ITickClientTestSuite) TestMalformedBodyIsUnreachable() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})
	defer server.Close()

	_, err := client.StockQuote(context.Background(), "US", "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamUnreachable))
}

func (suite *ITickClientTestSuite) TestHTTPErrorStatusIsUnreachable() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":0,"msg":"ok","data":{}}`))
	})
	defer server.Close()

	_, err := client.StockQuote(context.Background(), "US", "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamUnreachable))
}

func (suite *ITickClientTestSuite) TestDeadlineBecomesUpstreamTimeout() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"code":0,"msg":"ok","data":{}}`))
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.StockQuote(ctx, "US", "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamTimeout))
}

func (suite *ITickClientTestSuite) TestKlineSuccess() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/stock/kline", r.URL.Path)
		suite.Equal("8", r.URL.Query().Get("kType"))
		suite.Equal("100", r.URL.Query().Get("limit"))

		w.Write([]byte(`{"code":0,"msg":"ok","data":[
			{"t":1,"o":100,"h":101,"l":99,"c":100.5,"v":1000},
			{"t":2,"o":100.5,"h":102,"l":100,"c":"101.25","v":1100}
		]}`))
	})
	defer server.Close()

	batch, err := client.Kline(context.Background(), types.NewKlineQuery("US", "AAPL"))
	suite.Require().NoError(err)

	suite.Require().Len(batch.Bars, 2)
	suite.Equal([]float64{100.5, 101.25}, batch.Bars.Closes())
	suite.NotEmpty(batch.Raw)
}

func (suite *ITickClientTestSuite) TestKlineEmptyListIsNoHistoricalData() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"msg":"ok","data":[]}`))
	})
	defer server.Close()

	_, err := client.Kline(context.Background(), types.NewKlineQuery("US", "AAPL"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoHistoricalData))
}

func (suite *ITickClientTestSuite) TestKlineInvalidQueryFailsValidation() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Fail("no request expected for an invalid query")
	})
	defer server.Close()

	query := types.NewKlineQuery("US", "AAPL")
	query.Limit = 0

	_, err := client.Kline(context.Background(), query)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *ITickClientTestSuite) TestIndexQuote() {
	client, server := suite.newClient(func(w http.ResponseWriter, r *http.Request) {
		suite.Equal("/indices/quote", r.URL.Path)
		suite.Equal("GB", r.URL.Query().Get("region"))
		suite.Equal("SPX", r.URL.Query().Get("code"))

		w.Write([]byte(`{"code":0,"msg":"ok","data":{"s":"SPX","ld":5012.3,"ch":-12.1,"chp":-0.24}}`))
	})
	defer server.Close()

	quote, err := client.IndexQuote(context.Background(), "GB", "SPX")
	suite.Require().NoError(err)
	suite.Equal(5012.3, quote.LastPrice.Float64())
	suite.Equal(-12.1, quote.Change.Float64())
}
