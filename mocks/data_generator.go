package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/tickerlens/tickerlens/internal/types"
)

// DataGenerator generates realistic candlestick series for testing.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a price series is generated.
type GeneratorConfig struct {
	// StartTime is the timestamp of the first bar
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical daily volatility)
	Volatility float64
	// Trend is the drift factor (-0.01 to 0.01 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultGeneratorConfig returns roughly a trading year of daily bars.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		StartTime:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:       24 * time.Hour,
		Count:          252,
		InitialPrice:   100.0,
		Volatility:     0.01,
		Trend:          0.0, // neutral
		VolumeBase:     1000000,
		VolumeVariance: 0.3,
	}
}

// Generate creates a price series based on the configuration.
// The generated data follows a geometric Brownian motion model for realistic price movements.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	series := make(types.PriceSeries, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for normally distributed returns
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		closePrice := open * (1 + priceChange + drift)
		if closePrice <= 0 {
			closePrice = open * 0.99 // Prevent negative prices
		}

		// High and low are within the open-close range plus some extension
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, closePrice) + highExtension
		low := math.Min(open, closePrice) - lowExtension
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		// Volume with variance
		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		series[i] = types.PriceBar{
			Timestamp: currentTime.UnixMilli(),
			Open:      types.FlexFloat(roundToDecimals(open, 4)),
			High:      types.FlexFloat(roundToDecimals(high, 4)),
			Low:       types.FlexFloat(roundToDecimals(low, 4)),
			Close:     types.FlexFloat(roundToDecimals(closePrice, 4)),
			Volume:    types.FlexFloat(roundToDecimals(volume, 2)),
			Turnover:  types.FlexFloat(roundToDecimals(volume*closePrice, 2)),
		}

		currentPrice = closePrice
		currentTime = currentTime.Add(config.Interval)
	}

	return series
}

// GenerateDaily is a convenience function that returns count daily bars
// from a fixed seed for reproducible fixtures.
func GenerateDaily(count int) types.PriceSeries {
	gen := NewDataGenerator(42)
	config := DefaultGeneratorConfig()
	config.Count = count
	return gen.Generate(config)
}

// roundToDecimals rounds a float64 to the given number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
