package indicator

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
	"github.com/tickerlens/tickerlens/internal/logger"
	"github.com/tickerlens/tickerlens/internal/types"
	"github.com/tickerlens/tickerlens/pkg/errors"
)

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.engine = NewEngine(logger.NewTestLogger())
}

// barsFromCloses builds a daily series where high and low straddle the
// close by one unit.
func barsFromCloses(closes ...float64) types.PriceSeries {
	series := make(types.PriceSeries, 0, len(closes))

	for i, c := range closes {
		series = append(series, types.PriceBar{
			Timestamp: int64(1700000000000 + i*86400000),
			Open:      types.FlexFloat(c),
			High:      types.FlexFloat(c + 1),
			Low:       types.FlexFloat(c - 1),
			Close:     types.FlexFloat(c),
			Volume:    types.FlexFloat(1000),
		})
	}

	return series
}

func rampCloses(start float64, count int) []float64 {
	closes := make([]float64, count)
	for i := range closes {
		closes[i] = start + float64(i)
	}

	return closes
}

func (suite *EngineTestSuite) TestRampOfTwentyFiveCloses() {
	series := barsFromCloses(rampCloses(100, 25)...)

	result, err := suite.engine.Compute(series, optional.Some(124.0))
	suite.Require().NoError(err)

	// 25 closes cover the 20-bar window but not the longer ones.
	suite.Require().True(result.MA20.IsSome())
	suite.InDelta(114.50, result.MA20.Unwrap(), 1e-9)
	suite.True(result.MA50.IsNone())
	suite.True(result.MA200.IsNone())
	suite.True(result.VsMA50.IsNone())
	suite.True(result.VsMA200.IsNone())

	// A strictly rising series has no losses, which pins RSI at 100.
	suite.Require().True(result.RSI.IsSome())
	suite.InDelta(100.0, result.RSI.Unwrap(), 1e-9)

	suite.True(result.Volatility30D.IsSome())
	suite.Equal(124.0, result.CurrentPrice)
	suite.Equal(125.0, result.High52W)
	suite.Equal(99.0, result.Low52W)
}

func (suite *EngineTestSuite) TestFlatSeriesWithPositions() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}

	series := barsFromCloses(closes...)

	result, err := suite.engine.Compute(series, optional.Some(101.0))
	suite.Require().NoError(err)

	suite.Require().True(result.MA20.IsSome())
	suite.Equal(100.0, result.MA20.Unwrap())
	suite.Require().True(result.MA50.IsSome())
	suite.Equal(100.0, result.MA50.Unwrap())
	suite.True(result.MA200.IsNone())

	suite.Require().True(result.VsMA50.IsSome())
	suite.Equal(types.PositionAbove, result.VsMA50.Unwrap())
	suite.True(result.VsMA200.IsNone())

	// A flat series has zero losses and zero dispersion.
	suite.Require().True(result.RSI.IsSome())
	suite.Equal(100.0, result.RSI.Unwrap())
	suite.Require().True(result.Volatility30D.IsSome())
	suite.Equal(0.0, result.Volatility30D.Unwrap())
}

func (suite *EngineTestSuite) TestPriceOnAverageCountsAsBelow() {
	closes := make([]float64, 50)
	for i := range closes {
		closes[i] = 100
	}

	result, err := suite.engine.Compute(barsFromCloses(closes...), optional.Some(100.0))
	suite.Require().NoError(err)

	suite.Require().True(result.VsMA50.IsSome())
	suite.Equal(types.PositionBelow, result.VsMA50.Unwrap())
}

func (suite *EngineTestSuite) TestEmptySeriesIsNoData() {
	_, err := suite.engine.Compute(types.PriceSeries{}, optional.None[float64]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoData))
}

func (suite *EngineTestSuite) TestAllMissingClosesIsNoData() {
	series := types.PriceSeries{
		{Close: types.FlexFloat(math.NaN())},
		{Close: types.FlexFloat(math.NaN())},
	}

	_, err := suite.engine.Compute(series, optional.None[float64]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoData))
}

func (suite *EngineTestSuite) TestMissingClosesAreDropped() {
	closes := rampCloses(100, 25)
	series := barsFromCloses(closes...)

	// Interleave bars whose close never parsed.
	broken := types.PriceBar{
		High:  types.FlexFloat(500),
		Low:   types.FlexFloat(1),
		Close: types.FlexFloat(math.NaN()),
	}
	series = append(types.PriceSeries{broken}, series...)
	series = append(series, broken)

	result, err := suite.engine.Compute(series, optional.Some(124.0))
	suite.Require().NoError(err)

	// 27 bars, but only the 25 usable closes feed the windows.
	suite.Require().True(result.MA20.IsSome())
	suite.InDelta(114.50, result.MA20.Unwrap(), 1e-9)
	suite.True(result.MA50.IsNone())

	// The broken bars still contribute their highs and lows.
	suite.Equal(500.0, result.High52W)
	suite.Equal(1.0, result.Low52W)
}

func (suite *EngineTestSuite) TestCurrentPriceFallsBackToLastUsableClose() {
	series := barsFromCloses(rampCloses(40, 30)...)
	series = append(series, types.PriceBar{Close: types.FlexFloat(math.NaN())})

	result, err := suite.engine.Compute(series, optional.None[float64]())
	suite.Require().NoError(err)
	suite.Equal(69.0, result.CurrentPrice)
}

func (suite *EngineTestSuite) TestShortSeriesKeepsOnlyExtremes() {
	result, err := suite.engine.Compute(barsFromCloses(100, 102), optional.None[float64]())
	suite.Require().NoError(err)

	suite.True(result.MA20.IsNone())
	suite.True(result.MA50.IsNone())
	suite.True(result.MA200.IsNone())
	suite.True(result.RSI.IsNone())
	suite.True(result.Volatility30D.IsNone())
	suite.True(result.VsMA50.IsNone())
	suite.True(result.VsMA200.IsNone())

	suite.Equal(103.0, result.High52W)
	suite.Equal(99.0, result.Low52W)
	suite.Equal(102.0, result.CurrentPrice)
}

func (suite *EngineTestSuite) TestMissingHighsAndLowsIsComputationError() {
	nan := types.FlexFloat(math.NaN())
	series := types.PriceSeries{
		{High: nan, Low: nan, Close: types.FlexFloat(100)},
		{High: nan, Low: nan, Close: types.FlexFloat(101)},
	}

	_, err := suite.engine.Compute(series, optional.None[float64]())
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeComputation))
}

func (suite *EngineTestSuite) TestReorderingClosesChangesLongAverage() {
	closes := rampCloses(1, 250)
	ascending, err := suite.engine.Compute(barsFromCloses(closes...), optional.Some(1.0))
	suite.Require().NoError(err)

	reversed := make([]float64, len(closes))
	for i, c := range closes {
		reversed[len(closes)-1-i] = c
	}

	descending, err := suite.engine.Compute(barsFromCloses(reversed...), optional.Some(1.0))
	suite.Require().NoError(err)

	// The windows keep the last closes in series order, so the same values
	// in a different order land on a different tail.
	suite.Require().True(ascending.MA200.IsSome())
	suite.Require().True(descending.MA200.IsSome())
	suite.InDelta(150.5, ascending.MA200.Unwrap(), 1e-9)
	suite.InDelta(100.5, descending.MA200.Unwrap(), 1e-9)
	suite.NotEqual(ascending.MA20.Unwrap(), descending.MA20.Unwrap())
}

func (suite *EngineTestSuite) TestRoundingIsHalfAwayFromZero() {
	suite.Equal(2.68, round2(2.675))
	suite.Equal(-2.68, round2(-2.675))
	suite.Equal(1.01, round2(1.005))
	suite.Equal(100.0, round2(100.0))
	suite.Equal(99.99, round2(99.994))
}

func (suite *EngineTestSuite) TestPositionVersus() {
	suite.True(positionVersus(100, optional.None[float64]()).IsNone())

	above := positionVersus(101, optional.Some(100.0))
	suite.Require().True(above.IsSome())
	suite.Equal(types.PositionAbove, above.Unwrap())

	below := positionVersus(99, optional.Some(100.0))
	suite.Require().True(below.IsSome())
	suite.Equal(types.PositionBelow, below.Unwrap())
}
