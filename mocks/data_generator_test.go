package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultGeneratorConfig()
	config.Count = 100

	series := gen.Generate(config)

	if len(series) != 100 {
		t.Errorf("expected 100 bars, got %d", len(series))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp <= series[i-1].Timestamp {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify OHLC values are positive
	for i, bar := range series {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f",
				i, bar.Open.Float64(), bar.High.Float64(), bar.Low.Float64(), bar.Close.Float64())
		}
	}

	// Verify High >= Low
	for i, bar := range series {
		if bar.High < bar.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, bar.High.Float64(), bar.Low.Float64())
		}
	}

	// Verify time intervals
	expectedInterval := config.Interval.Milliseconds()
	for i := 1; i < len(series); i++ {
		actualInterval := series[i].Timestamp - series[i-1].Timestamp
		if actualInterval != expectedInterval {
			t.Errorf("unexpected interval at index %d: expected %d, got %d",
				i, expectedInterval, actualInterval)
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)

	config := DefaultGeneratorConfig()
	config.Count = 10

	series1 := gen1.Generate(config)
	series2 := gen2.Generate(config)

	for i := range series1 {
		if series1[i].Close != series2[i].Close {
			t.Errorf("series not reproducible at index %d: got %f and %f",
				i, series1[i].Close.Float64(), series2[i].Close.Float64())
		}
	}
}

func TestDataGenerator_Different_Seeds(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(123)

	config := DefaultGeneratorConfig()
	config.Count = 10

	series1 := gen1.Generate(config)
	series2 := gen2.Generate(config)

	// Different seeds should produce different results
	sameCount := 0
	for i := range series1 {
		if series1[i].Close == series2[i].Close {
			sameCount++
		}
	}

	if sameCount == len(series1) {
		t.Error("different seeds produced identical series")
	}
}

func TestGenerateDaily(t *testing.T) {
	series := GenerateDaily(300)

	if len(series) != 300 {
		t.Errorf("expected 300 bars, got %d", len(series))
	}

	// Verify chronological order
	for i := 1; i < len(series); i++ {
		if series[i].Timestamp <= series[i-1].Timestamp {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Repeated calls are deterministic
	again := GenerateDaily(300)
	for i := range series {
		if series[i].Close != again[i].Close {
			t.Errorf("GenerateDaily not deterministic at index %d", i)
		}
	}
}

func TestDefaultGeneratorConfig(t *testing.T) {
	config := DefaultGeneratorConfig()

	if config.Count != 252 {
		t.Errorf("expected default count 252, got %d", config.Count)
	}

	if config.Interval != 24*time.Hour {
		t.Errorf("expected default interval 24h, got %v", config.Interval)
	}

	if config.InitialPrice != 100.0 {
		t.Errorf("expected default initial price 100.0, got %f", config.InitialPrice)
	}
}
